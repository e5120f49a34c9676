package chess

// Color identifies one of the two sides.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Notation returns the algebraic letter for the piece type; pawns have none.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is an immutable (type, color) pair. It carries no position; the
// square a piece stands on is supplied wherever it is needed.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var (
	knightOffsets = []Square{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	kingOffsets = []Square{
		{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1},
		{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1},
	}
	rookDirs   = []Square{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}

	promotionTypes = []PieceType{Queen, Rook, Bishop, Knight}
)

// PseudoMoves generates the moves the piece could make from the given
// square by movement geometry alone. It does not consult whose turn it
// is and does not check whether a move leaves the mover's king in check.
func (p Piece) PseudoMoves(b *Board, from Square) []Move {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(b, from)
	case Knight:
		return p.offsetMoves(b, from, knightOffsets)
	case King:
		return p.offsetMoves(b, from, kingOffsets)
	case Bishop:
		return p.slidingMoves(b, from, bishopDirs)
	case Rook:
		return p.slidingMoves(b, from, rookDirs)
	case Queen:
		return append(p.slidingMoves(b, from, bishopDirs), p.slidingMoves(b, from, rookDirs)...)
	}
	return nil
}

// offsetMoves handles the fixed-offset pieces (knight and king): each
// on-board target is a move unless a friendly piece occupies it.
func (p Piece) offsetMoves(b *Board, from Square, offsets []Square) []Move {
	moves := []Move{}
	for _, off := range offsets {
		to := Square{Row: from.Row + off.Row, Col: from.Col + off.Col}
		if !to.OnBoard() {
			continue
		}
		if target := b.At(to); target == nil || target.Color != p.Color {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// slidingMoves walks outward in each direction until the walk is blocked.
// An enemy piece yields a capture and stops the walk; a friendly piece
// stops it without a move.
func (p Piece) slidingMoves(b *Board, from Square, dirs []Square) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		to := Square{Row: from.Row + dir.Row, Col: from.Col + dir.Col}
		for to.OnBoard() {
			target := b.At(to)
			if target == nil {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if target.Color != p.Color {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			to = Square{Row: to.Row + dir.Row, Col: to.Col + dir.Col}
		}
	}
	return moves
}

func (p Piece) pawnMoves(b *Board, from Square) []Move {
	dir, startRow, promotionRow := 1, 2, 8
	if p.Color == Black {
		dir, startRow, promotionRow = -1, 7, 1
	}

	moves := []Move{}
	oneForward := Square{Row: from.Row + dir, Col: from.Col}
	if oneForward.OnBoard() && b.At(oneForward) == nil {
		moves = appendPawnMove(moves, from, oneForward, promotionRow)
		if from.Row == startRow {
			twoForward := Square{Row: from.Row + 2*dir, Col: from.Col}
			if b.At(twoForward) == nil {
				moves = append(moves, Move{From: from, To: twoForward})
			}
		}
	}
	for _, dc := range []int{-1, 1} {
		capture := Square{Row: from.Row + dir, Col: from.Col + dc}
		if !capture.OnBoard() {
			continue
		}
		if target := b.At(capture); target != nil && target.Color != p.Color {
			moves = appendPawnMove(moves, from, capture, promotionRow)
		}
	}
	return moves
}

// appendPawnMove adds a pawn move, fanned out into the four promotion
// choices when it reaches the back rank.
func appendPawnMove(moves []Move, from, to Square, promotionRow int) []Move {
	if to.Row != promotionRow {
		return append(moves, Move{From: from, To: to})
	}
	for _, pt := range promotionTypes {
		moves = append(moves, Move{From: from, To: to, Promotion: pt})
	}
	return moves
}
