package coordinator

import "encoding/json"

// Inbound event names (client to server).
const (
	EventCreateRoom  = "create-room"
	EventJoinRoom    = "join-room"
	EventStartGame   = "start-game"
	EventNextTurn    = "next-turn"
	EventMakeGuess   = "make-guess"
	EventRestartGame = "restart-game"
	EventRestartDeal = "restart-deal"
)

// Outbound event names (server to client).
const (
	EventRoomCreated        = "room-created"
	EventPlayerJoined       = "player-joined"
	EventReadyToStart       = "ready-to-start"
	EventGameStarted        = "game-started"
	EventTurnUpdate         = "turn-update"
	EventGameOver           = "game-over"
	EventPlayerStatusUpdate = "player-status-update"
	EventRestartLoading     = "restart-loading"
	EventPlayerLeft         = "player-left"
	EventError              = "error"
)

// Error codes carried by EventError payloads. Rejections that the original
// event flow swallowed silently are surfaced to the caller under these codes.
const (
	ErrCodeBadRequest       = "bad-request"
	ErrCodeRoomNotFound     = "room-not-found"
	ErrCodeRoomFull         = "room-full"
	ErrCodeEmptyCardPool    = "empty-card-pool"
	ErrCodeNotEnoughPlayers = "not-enough-players"
	ErrCodeWrongState       = "wrong-state"
	ErrCodeNotYourTurn      = "not-your-turn"
)

// Envelope is one inbound frame: an event name plus its JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound is one server-to-client frame.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// CreateRoomRequest opens a new room with the caller as creator.
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// JoinRoomRequest seats the caller as the second participant.
type JoinRoomRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DealRequest starts a game or a rematch. The card pool is supplied by the
// initiating client on every deal; the server keeps no authoritative catalog.
type DealRequest struct {
	Code  string   `json:"code"`
	Cards []string `json:"cards"`
}

// RoomRequest addresses an existing room (next-turn, restart-game).
type RoomRequest struct {
	Code string `json:"code"`
}

// GuessRequest submits the single, game-ending guess.
type GuessRequest struct {
	Code string `json:"code"`
	Card string `json:"card"`
}

// RoomCreatedPayload returns the shareable room code to the creator.
type RoomCreatedPayload struct {
	Code string `json:"code"`
}

// PlayerJoinedPayload announces the new participant count and names.
type PlayerJoinedPayload struct {
	PlayerCount int      `json:"playerCount"`
	Players     []string `json:"players"`
}

// ReadyToStartPayload fires when the second seat is taken.
type ReadyToStartPayload struct {
	Players []string `json:"players"`
}

// GameStartedPayload is unicast: each participant sees their own target.
type GameStartedPayload struct {
	Target       string   `json:"target"`
	Board        []string `json:"board"`
	OpponentName string   `json:"opponentName"`
	TurnPlayerID string   `json:"turnPlayerId"`
}

// TurnUpdatePayload announces the participant now on turn.
type TurnUpdatePayload struct {
	TurnPlayerID string `json:"turnPlayerId"`
}

// RevealedPlayer is the end-of-game reveal of one participant's target.
type RevealedPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Target string `json:"target"`
}

// GameOverPayload declares the winner and reveals both targets to both sides.
type GameOverPayload struct {
	WinnerID string           `json:"winnerId"`
	Players  []RevealedPlayer `json:"players"`
}

// PlayerStatusPayload reports a single rematch-ready signal.
type PlayerStatusPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// PlayerLeftPayload notifies the remaining participant of a disconnect.
type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// ErrorPayload reports a rejected action to the caller only.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
