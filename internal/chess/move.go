package chess

// Move is an immutable (from, to, promotion) value. Promotion is set
// only on pawn moves reaching the back rank and names the piece type the
// pawn becomes; it is empty otherwise. Moves compare structurally with ==.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8=Q".
func (m Move) String() string {
	s := m.From.Notation() + m.To.Notation()
	if m.Promotion != "" {
		s += "=" + m.Promotion.Notation()
	}
	return s
}
