package model

import "github.com/chesscore/backend/internal/chess"

type Player struct {
	ID string
}

// ClientPlayer is the client-facing view of a seat. An empty ID means
// the seat is free.
type ClientPlayer struct {
	ID    string      `json:"name"`
	Color chess.Color `json:"color"`
}

// MatchFoundEvent is sent to a queued player when matchmaking pairs them.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  chess.Color `json:"color"`
}
