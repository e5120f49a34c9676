package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/chesscore/backend/internal/chess"
	"github.com/chesscore/backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Terminal results reported to clients.
const (
	ResolveCheckmate = "checkmate"
	ResolveStalemate = "stalemate"
)

var (
	ErrGameFull        = errors.New("game is full")
	ErrGameOver        = errors.New("game is over")
	ErrPlayerNotInGame = errors.New("player not in game")
	ErrNotYourTurn     = errors.New("not your turn")
)

// GameConnections holds the live websocket connections for one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is a single game session: the rules engine, the two seats, and
// the observers to push state to. All rule decisions are delegated to
// the engine; the session only orchestrates.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *chess.Game
	players     Players
	moveHistory []chess.Move
	lastMove    *chess.Move
	resolve     *string
	connections *GameConnections
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the serializable snapshot sent to clients. The board is
// row-major with row 1 (white's back rank) first; empty squares are null.
type GameState struct {
	Board       [][]*chess.Piece `json:"board"`
	ToMove      chess.Color      `json:"toMove"`
	IsCheck     bool             `json:"isCheck"`
	Resolve     *string          `json:"resolve"`
	MoveHistory []chess.Move     `json:"moveHistory"`
	LastMove    *chess.Move      `json:"lastMove"`
	Players     Players          `json:"players"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		engine:      chess.NewGame(),
		moveHistory: make([]chess.Move, 0),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats the player on the first free side and returns the
// color assigned.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: chess.White}
		return chess.White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: chess.Black}
		return chess.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// snapshot builds the client-facing state. Callers must hold g.mu.
func (g *Game) snapshot() GameState {
	board := make([][]*chess.Piece, 8)
	for row := 1; row <= 8; row++ {
		board[row-1] = make([]*chess.Piece, 8)
		for col := 1; col <= 8; col++ {
			board[row-1][col-1] = g.engine.Board().At(chess.Square{Row: row, Col: col})
		}
	}

	// A standard game always has both kings; a missing one can only
	// mean a mid-setup custom board, which is simply not in check.
	check, err := g.engine.InCheck(g.engine.Turn())
	if err != nil {
		check = false
	}

	return GameState{
		Board:       board,
		ToMove:      g.engine.Turn(),
		IsCheck:     check,
		Resolve:     g.resolve,
		MoveHistory: g.moveHistory,
		LastMove:    g.lastMove,
		Players:     g.players,
	}
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	_, ok := g.playerColor(playerID)
	return ok
}

func (g *Game) playerColor(playerID string) (chess.Color, bool) {
	if playerID != "" && g.players.White.ID == playerID {
		return chess.White, true
	}
	if playerID != "" && g.players.Black.ID == playerID {
		return chess.Black, true
	}
	return "", false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// MakeMove applies the player's move through the engine. Rule-level
// rejections (chess.ErrNoPieceOrWrongTurn, chess.ErrNotLegalMove) pass
// through untouched so callers can classify them.
func (g *Game) MakeMove(playerID string, move chess.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return ErrGameOver
	}
	color, ok := g.playerColor(playerID)
	if !ok {
		return ErrPlayerNotInGame
	}
	if color != g.engine.Turn() {
		return ErrNotYourTurn
	}

	if err := g.engine.MakeMove(move); err != nil {
		return err
	}

	g.moveHistory = append(g.moveHistory, move)
	last := move
	g.lastMove = &last

	// The engine has flipped the turn; see whether the game is over for
	// the side now to move.
	toMove := g.engine.Turn()
	if mate, err := g.engine.InCheckmate(toMove); err == nil && mate {
		result := ResolveCheckmate
		g.resolve = &result
	} else if stale, err := g.engine.InStalemate(toMove); err == nil && stale {
		result := ResolveStalemate
		g.resolve = &result
	}

	go g.broadcastState()
	return nil
}

// LegalMoves returns the legal moves for the piece on the square. The
// second return is false when the square is empty, which is distinct
// from a piece with no moves.
func (g *Game) LegalMoves(sq chess.Square) ([]chess.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	moves := g.engine.ValidMoves(sq)
	if moves == nil {
		return nil, false
	}
	return moves, true
}

// RegisterConnection attaches a websocket to the game. Players and, while
// a seat is free, spectators are allowed; a duplicate connection for the
// same player is rejected in favor of the existing one.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	state := g.snapshot()
	g.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal game state: %v", err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to player %s: %v", playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
