package chess

import "fmt"

// Square is a board coordinate. Row 1 is white's back rank, row 8 is
// black's; Col 1 is the a-file. A Square carries no piece information.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// OnBoard reports whether the square lies inside the 8x8 board.
func (s Square) OnBoard() bool {
	return s.Row >= 1 && s.Row <= 8 && s.Col >= 1 && s.Col <= 8
}

// Notation returns the algebraic square label, e.g. "e4".
func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col-1, s.Row)
}

// Board is an 8x8 mailbox of optional pieces. A nil entry is an empty
// square. The zero value is an empty board.
type Board struct {
	squares [8][8]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board with the standard starting layout.
func NewStandardBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// At returns the piece on the square, or nil if the square is empty or
// off the board.
func (b *Board) At(sq Square) *Piece {
	if !sq.OnBoard() {
		return nil
	}
	return b.squares[sq.Row-1][sq.Col-1]
}

// Place puts a piece on the square, replacing whatever was there.
func (b *Board) Place(sq Square, p Piece) {
	b.squares[sq.Row-1][sq.Col-1] = &p
}

// Remove clears the square.
func (b *Board) Remove(sq Square) {
	b.squares[sq.Row-1][sq.Col-1] = nil
}

// Reset clears the board and lays out the standard starting position.
func (b *Board) Reset() {
	b.squares = [8][8]*Piece{}
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 1; col <= 8; col++ {
		b.Place(Square{Row: 1, Col: col}, Piece{Type: backRank[col-1], Color: White})
		b.Place(Square{Row: 2, Col: col}, Piece{Type: Pawn, Color: White})
		b.Place(Square{Row: 7, Col: col}, Piece{Type: Pawn, Color: Black})
		b.Place(Square{Row: 8, Col: col}, Piece{Type: backRank[col-1], Color: Black})
	}
}

// Clone returns an independent copy of the board. Pieces are immutable
// values, so the copies may share piece pointers.
func (b *Board) Clone() *Board {
	c := &Board{}
	c.squares = b.squares
	return c
}
