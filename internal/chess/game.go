package chess

// Game owns a board and the side to move, and enforces the rules on top
// of raw pseudo-move generation. It is not safe for concurrent use;
// callers needing shared access must serialize externally.
type Game struct {
	board *Board
	turn  Color
}

// NewGame returns a game with the standard starting position and white
// to move.
func NewGame() *Game {
	return &Game{
		board: NewStandardBoard(),
		turn:  White,
	}
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.turn
}

// SetTurn sets the side to move.
func (g *Game) SetTurn(c Color) {
	g.turn = c
}

// Board returns the current board.
func (g *Game) Board() *Board {
	return g.board
}

// SetBoard replaces the whole board, e.g. to load a saved position.
func (g *Game) SetBoard(b *Board) {
	g.board = b
}

// ValidMoves returns the legal moves for the piece on the given square,
// regardless of whose turn it is. It returns nil if the square is empty,
// as opposed to an empty slice for a piece with no legal moves.
func (g *Game) ValidMoves(sq Square) []Move {
	piece := g.board.At(sq)
	if piece == nil {
		return nil
	}

	pseudo := piece.PseudoMoves(g.board, sq)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		// Simulate on a scratch board with the un-promoted piece; a
		// promoted piece can never newly attack its own king, so the
		// substitution is deferred to MakeMove.
		scratch := g.board.Clone()
		scratch.Remove(m.From)
		scratch.Place(m.To, *piece)
		if !inCheck(scratch, piece.Color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// MakeMove validates and applies the move, then flips the turn. On any
// failure the board and turn are left exactly as they were.
func (g *Game) MakeMove(m Move) error {
	piece := g.board.At(m.From)
	if piece == nil || piece.Color != g.turn {
		return ErrNoPieceOrWrongTurn
	}

	legal := false
	for _, lm := range g.ValidMoves(m.From) {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return ErrNotLegalMove
	}

	captured := g.board.At(m.To)
	g.board.Remove(m.From)
	if piece.Type == Pawn && (m.To.Row == 1 || m.To.Row == 8) && m.Promotion != "" {
		g.board.Place(m.To, Piece{Type: m.Promotion, Color: piece.Color})
	} else {
		g.board.Place(m.To, *piece)
	}

	// Re-check king safety after the real application. The legality
	// filter already guarantees this; if the two checks ever diverge,
	// revert and refuse the move.
	if inCheck(g.board, piece.Color) {
		g.board.Remove(m.To)
		if captured != nil {
			g.board.Place(m.To, *captured)
		}
		g.board.Place(m.From, *piece)
		return ErrSelfCheck
	}

	g.turn = g.turn.Opponent()
	return nil
}

// InCheck reports whether the given color's king is attacked. It fails
// with ErrNoKing if that color has no king on the board.
func (g *Game) InCheck(c Color) (bool, error) {
	if _, ok := kingSquare(g.board, c); !ok {
		return false, ErrNoKing
	}
	return inCheck(g.board, c), nil
}

// InCheckmate reports whether the given color is in check with no legal
// moves. It fails with ErrNoKing if that color has no king on the board.
func (g *Game) InCheckmate(c Color) (bool, error) {
	check, err := g.InCheck(c)
	if err != nil {
		return false, err
	}
	return check && !g.hasAnyMove(c), nil
}

// InStalemate reports whether the given color is not in check and has no
// legal moves. The definition is structural: it does not require that it
// actually be that color's turn. It fails with ErrNoKing if that color
// has no king on the board.
func (g *Game) InStalemate(c Color) (bool, error) {
	check, err := g.InCheck(c)
	if err != nil {
		return false, err
	}
	return !check && !g.hasAnyMove(c), nil
}

// hasAnyMove scans the whole board for a piece of the color with at
// least one legal move.
func (g *Game) hasAnyMove(c Color) bool {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			sq := Square{Row: row, Col: col}
			piece := g.board.At(sq)
			if piece == nil || piece.Color != c {
				continue
			}
			if len(g.ValidMoves(sq)) > 0 {
				return true
			}
		}
	}
	return false
}

// inCheck reports whether the color's king is attacked on the given
// board. A board without that king is never in check; the public queries
// surface the missing king as ErrNoKing instead.
func inCheck(b *Board, c Color) bool {
	king, ok := kingSquare(b, c)
	if !ok {
		return false
	}
	return squareAttacked(b, c.Opponent(), king)
}

// squareAttacked reports whether any piece of the attacking color has a
// pseudo-move targeting the square. Pseudo-moves, not legal moves: going
// through the legality filter here would recurse forever.
func squareAttacked(b *Board, by Color, target Square) bool {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			sq := Square{Row: row, Col: col}
			piece := b.At(sq)
			if piece == nil || piece.Color != by {
				continue
			}
			for _, m := range piece.PseudoMoves(b, sq) {
				if m.To == target {
					return true
				}
			}
		}
	}
	return false
}

func kingSquare(b *Board, c Color) (Square, bool) {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			sq := Square{Row: row, Col: col}
			if piece := b.At(sq); piece != nil && piece.Type == King && piece.Color == c {
				return sq, true
			}
		}
	}
	return Square{}, false
}
