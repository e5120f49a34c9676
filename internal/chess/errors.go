package chess

import "errors"

// Move rejection reasons. MakeMove wraps none of these with further
// context; callers classify with errors.Is. Every failure leaves the
// game state untouched.
var (
	// ErrNoPieceOrWrongTurn: the origin square is empty or holds a piece
	// of the side not to move.
	ErrNoPieceOrWrongTurn = errors.New("invalid move: no piece at origin or wrong side to move")

	// ErrNotLegalMove: the move is not among the legal moves generated
	// for the origin square (bad geometry, blocked path, or self-check).
	ErrNotLegalMove = errors.New("invalid move: not a legal move")

	// ErrSelfCheck: the defensive re-check after applying the move found
	// the mover's own king attacked. Unreachable while the legality
	// filter and the re-check agree; treated as an invariant violation.
	ErrSelfCheck = errors.New("invalid move: leaves own king in check")

	// ErrNoKing: the board holds no king of the queried color.
	ErrNoKing = errors.New("no king of that color on the board")
)
