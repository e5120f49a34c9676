package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// gameWith builds a game over an empty board populated by place and with
// the given side to move.
func gameWith(turn Color, place map[Square]Piece) *Game {
	g := NewGame()
	b := NewBoard()
	for sq, p := range place {
		b.Place(sq, p)
	}
	g.SetBoard(b)
	g.SetTurn(turn)
	return g
}

func TestNewGame(t *testing.T) {
	g := NewGame()
	if g.Turn() != White {
		t.Errorf("Turn() = %v, want %v", g.Turn(), White)
	}
	if got := g.Board().At(Square{Row: 1, Col: 5}); got == nil || got.Type != King || got.Color != White {
		t.Errorf("e1 = %v, want white king", got)
	}
}

func TestValidMovesEmptySquareIsNil(t *testing.T) {
	g := NewGame()
	if got := g.ValidMoves(Square{Row: 4, Col: 4}); got != nil {
		t.Errorf("ValidMoves(empty square) = %v, want nil", got)
	}
}

func TestValidMovesBlockedPieceIsEmptyNotNil(t *testing.T) {
	g := NewGame()
	// The a1 rook is boxed in by the a2 pawn and b1 knight.
	got := g.ValidMoves(Square{Row: 1, Col: 1})
	if got == nil {
		t.Fatal("ValidMoves(blocked rook) = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("ValidMoves(blocked rook) = %v, want no moves", got)
	}
}

func TestValidMovesIdempotent(t *testing.T) {
	g := NewGame()
	sq := Square{Row: 2, Col: 5}
	first := g.ValidMoves(sq)
	second := g.ValidMoves(sq)
	if diff := cmp.Diff(first, second, sortMoves); diff != "" {
		t.Errorf("ValidMoves() not idempotent (-first +second):\n%s", diff)
	}
}

func TestValidMovesFiltersSelfCheck(t *testing.T) {
	// White rook on e2 is pinned against the king on e1 by the black
	// rook on e8: it may only move along the e-file.
	g := gameWith(White, map[Square]Piece{
		{Row: 1, Col: 5}: {Type: King, Color: White},
		{Row: 2, Col: 5}: {Type: Rook, Color: White},
		{Row: 8, Col: 5}: {Type: Rook, Color: Black},
		{Row: 8, Col: 1}: {Type: King, Color: Black},
	})

	for _, m := range g.ValidMoves(Square{Row: 2, Col: 5}) {
		if m.To.Col != 5 {
			t.Errorf("pinned rook offered move off the file: %v", m)
		}
	}
}

func TestMakeMoveOpeningScenario(t *testing.T) {
	g := NewGame()

	e2e4 := Move{From: Square{Row: 2, Col: 5}, To: Square{Row: 4, Col: 5}}
	if err := g.MakeMove(e2e4); err != nil {
		t.Fatalf("MakeMove(e2e4) error: %v", err)
	}
	if g.Turn() != Black {
		t.Fatalf("after e2e4, Turn() = %v, want %v", g.Turn(), Black)
	}

	e7e5 := Move{From: Square{Row: 7, Col: 5}, To: Square{Row: 5, Col: 5}}
	if err := g.MakeMove(e7e5); err != nil {
		t.Fatalf("MakeMove(e7e5) error: %v", err)
	}
	if g.Turn() != White {
		t.Errorf("after e7e5, Turn() = %v, want %v", g.Turn(), White)
	}

	if got := g.Board().At(Square{Row: 4, Col: 5}); got == nil || got.Type != Pawn || got.Color != White {
		t.Errorf("e4 = %v, want white pawn", got)
	}
	if got := g.Board().At(Square{Row: 2, Col: 5}); got != nil {
		t.Errorf("e2 = %v, want empty", got)
	}
}

func TestMakeMoveRejections(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want error
	}{
		{
			name: "empty origin",
			move: Move{From: Square{Row: 4, Col: 4}, To: Square{Row: 5, Col: 4}},
			want: ErrNoPieceOrWrongTurn,
		},
		{
			name: "opponent piece on your turn",
			move: Move{From: Square{Row: 7, Col: 5}, To: Square{Row: 5, Col: 5}},
			want: ErrNoPieceOrWrongTurn,
		},
		{
			name: "geometry violation",
			move: Move{From: Square{Row: 2, Col: 5}, To: Square{Row: 5, Col: 5}},
			want: ErrNotLegalMove,
		},
		{
			name: "blocked path",
			move: Move{From: Square{Row: 1, Col: 1}, To: Square{Row: 5, Col: 1}},
			want: ErrNotLegalMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			before := *g.Board()
			beforeTurn := g.Turn()

			err := g.MakeMove(tt.move)
			if !errors.Is(err, tt.want) {
				t.Fatalf("MakeMove(%v) error = %v, want %v", tt.move, err, tt.want)
			}

			// All-or-nothing: failure leaves the game untouched.
			if *g.Board() != before {
				t.Error("board changed on failed move")
			}
			if g.Turn() != beforeTurn {
				t.Error("turn changed on failed move")
			}
		})
	}
}

func TestMakeMoveKingIntoAttackedSquare(t *testing.T) {
	g := gameWith(White, map[Square]Piece{
		{Row: 1, Col: 5}: {Type: King, Color: White},
		{Row: 8, Col: 4}: {Type: Rook, Color: Black},
		{Row: 8, Col: 8}: {Type: King, Color: Black},
	})

	// d1 is covered by the black rook on d8.
	err := g.MakeMove(Move{From: Square{Row: 1, Col: 5}, To: Square{Row: 1, Col: 4}})
	if !errors.Is(err, ErrNotLegalMove) {
		t.Errorf("MakeMove(Kd1) error = %v, want %v", err, ErrNotLegalMove)
	}
}

func TestMakeMovePromotion(t *testing.T) {
	g := gameWith(White, map[Square]Piece{
		{Row: 7, Col: 1}: {Type: Pawn, Color: White},
		{Row: 1, Col: 5}: {Type: King, Color: White},
		{Row: 8, Col: 8}: {Type: King, Color: Black},
	})

	from := Square{Row: 7, Col: 1}
	legal := g.ValidMoves(from)
	if len(legal) != 4 {
		t.Fatalf("ValidMoves(a7 pawn) returned %d moves, want 4 promotions", len(legal))
	}

	if err := g.MakeMove(Move{From: from, To: Square{Row: 8, Col: 1}, Promotion: Queen}); err != nil {
		t.Fatalf("MakeMove(a7a8=Q) error: %v", err)
	}
	got := g.Board().At(Square{Row: 8, Col: 1})
	if got == nil || got.Type != Queen || got.Color != White {
		t.Errorf("a8 = %v, want white queen", got)
	}
	if g.Turn() != Black {
		t.Errorf("Turn() = %v, want %v", g.Turn(), Black)
	}
}

func TestInCheck(t *testing.T) {
	g := gameWith(Black, map[Square]Piece{
		{Row: 8, Col: 1}: {Type: King, Color: Black},
		{Row: 1, Col: 1}: {Type: Rook, Color: White},
		{Row: 1, Col: 5}: {Type: King, Color: White},
	})

	check, err := g.InCheck(Black)
	if err != nil {
		t.Fatalf("InCheck(Black) error: %v", err)
	}
	if !check {
		t.Error("InCheck(Black) = false, want true (rook on the a-file)")
	}

	check, err = g.InCheck(White)
	if err != nil {
		t.Fatalf("InCheck(White) error: %v", err)
	}
	if check {
		t.Error("InCheck(White) = true, want false")
	}
}

func TestInCheckNoKing(t *testing.T) {
	g := gameWith(White, map[Square]Piece{
		{Row: 1, Col: 5}: {Type: King, Color: White},
	})

	if _, err := g.InCheck(Black); !errors.Is(err, ErrNoKing) {
		t.Errorf("InCheck(Black) error = %v, want %v", err, ErrNoKing)
	}
	if _, err := g.InCheckmate(Black); !errors.Is(err, ErrNoKing) {
		t.Errorf("InCheckmate(Black) error = %v, want %v", err, ErrNoKing)
	}
	if _, err := g.InStalemate(Black); !errors.Is(err, ErrNoKing) {
		t.Errorf("InStalemate(Black) error = %v, want %v", err, ErrNoKing)
	}
}

func TestCheckmateAndAttackerRemoved(t *testing.T) {
	// Back-rank mate: the h8 rook checks the a8 king along the eighth
	// rank, the white king on b6 covers the flight squares.
	mate := map[Square]Piece{
		{Row: 8, Col: 1}: {Type: King, Color: Black},
		{Row: 8, Col: 8}: {Type: Rook, Color: White},
		{Row: 6, Col: 2}: {Type: King, Color: White},
	}

	g := gameWith(Black, mate)
	got, err := g.InCheckmate(Black)
	if err != nil {
		t.Fatalf("InCheckmate(Black) error: %v", err)
	}
	if !got {
		t.Fatal("InCheckmate(Black) = false, want true")
	}

	// Same position without the attacker: no check, no mate, and the
	// king has b8 to run to, so no stalemate either.
	delete(mate, Square{Row: 8, Col: 8})
	g = gameWith(Black, mate)

	if check, _ := g.InCheck(Black); check {
		t.Error("InCheck(Black) = true after removing the rook")
	}
	if m, _ := g.InCheckmate(Black); m {
		t.Error("InCheckmate(Black) = true after removing the rook")
	}
	if s, _ := g.InStalemate(Black); s {
		t.Error("InStalemate(Black) = true, want false (b8 is free)")
	}
}

func TestStalemate(t *testing.T) {
	// Cornered king: Ka8 is not attacked, but a7, b7 and b8 are all
	// covered by the queen on c7.
	g := gameWith(Black, map[Square]Piece{
		{Row: 8, Col: 1}: {Type: King, Color: Black},
		{Row: 7, Col: 3}: {Type: Queen, Color: White},
		{Row: 1, Col: 5}: {Type: King, Color: White},
	})

	got, err := g.InStalemate(Black)
	if err != nil {
		t.Fatalf("InStalemate(Black) error: %v", err)
	}
	if !got {
		t.Error("InStalemate(Black) = false, want true")
	}

	// The definition is structural: it holds for black even when the
	// turn is set to white.
	g.SetTurn(White)
	got, err = g.InStalemate(Black)
	if err != nil {
		t.Fatalf("InStalemate(Black) error: %v", err)
	}
	if !got {
		t.Error("InStalemate(Black) = false with white to move, want true")
	}

	if s, _ := g.InStalemate(White); s {
		t.Error("InStalemate(White) = true, want false (white has moves)")
	}
}

// Applying any legal move must never leave the mover's own king in
// check, by construction of the filter.
func TestLegalMovesNeverSelfCheck(t *testing.T) {
	g := gameWith(White, map[Square]Piece{
		{Row: 1, Col: 5}: {Type: King, Color: White},
		{Row: 2, Col: 5}: {Type: Rook, Color: White},
		{Row: 8, Col: 5}: {Type: Rook, Color: Black},
		{Row: 8, Col: 1}: {Type: King, Color: Black},
	})

	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			sq := Square{Row: row, Col: col}
			piece := g.Board().At(sq)
			if piece == nil || piece.Color != White {
				continue
			}
			for _, m := range g.ValidMoves(sq) {
				scratch := g.Board().Clone()
				scratch.Remove(m.From)
				scratch.Place(m.To, *piece)
				if inCheck(scratch, White) {
					t.Errorf("legal move %v leaves own king in check", m)
				}
			}
		}
	}
}
