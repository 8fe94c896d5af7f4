package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"kartibul/internal/config"
	"kartibul/internal/game"
	"kartibul/internal/store"
)

// Coordinator is the connection-event dispatcher. Every inbound frame from
// every connection funnels through one goroutine, so each state transition
// runs to completion before the next is dispatched and rooms need no locking
// on the event path. Outbound delivery goes through buffered per-client
// channels and never blocks a handler.
type Coordinator struct {
	store     *store.MemoryStore
	boardSize int

	events chan inboundEvent

	// clients is keyed by connection ID and mutated only from the
	// dispatch goroutine.
	clients map[string]*Client

	now func() time.Time
}

type inboundEvent struct {
	client     *Client
	env        Envelope
	disconnect bool
}

// New creates a coordinator over the given room registry.
func New(s *store.MemoryStore, cfg *config.ServerConfig) *Coordinator {
	return &Coordinator{
		store:     s,
		boardSize: cfg.Server.BoardSize,
		events:    make(chan inboundEvent, 256),
		clients:   make(map[string]*Client),
		now:       time.Now,
	}
}

// Run consumes inbound events until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.events:
			c.dispatch(ev)
		}
	}
}

// HandleConn adopts an upgraded websocket connection and blocks until it
// drops. Called from the HTTP handler's goroutine.
func (c *Coordinator) HandleConn(conn *websocket.Conn) {
	cl := newClient(conn)
	go cl.writePump()
	cl.readPump(c)
}

func (c *Coordinator) submit(ev inboundEvent) {
	c.events <- ev
}

func (c *Coordinator) reportDisconnect(cl *Client) {
	c.events <- inboundEvent{client: cl, disconnect: true}
}

func (c *Coordinator) dispatch(ev inboundEvent) {
	cl := ev.client

	if ev.disconnect {
		c.handleDisconnect(cl)
		return
	}

	// Register on first frame so room broadcasts can find the connection.
	if _, known := c.clients[cl.id]; !known && !cl.closed {
		c.clients[cl.id] = cl
	}

	switch ev.env.Event {
	case EventCreateRoom:
		c.handleCreateRoom(cl, ev.env.Data)
	case EventJoinRoom:
		c.handleJoinRoom(cl, ev.env.Data)
	case EventStartGame, EventRestartDeal:
		c.handleDeal(cl, ev.env.Data)
	case EventNextTurn:
		c.handleNextTurn(cl, ev.env.Data)
	case EventMakeGuess:
		c.handleGuess(cl, ev.env.Data)
	case EventRestartGame:
		c.handleRestartGame(cl, ev.env.Data)
	default:
		log.Printf("COORD: ignoring unknown event %q from %s", ev.env.Event, cl.id)
	}
}

func (c *Coordinator) handleCreateRoom(cl *Client, data json.RawMessage) {
	var req CreateRoomRequest
	if err := unmarshal(data, &req); err != nil {
		c.sendError(cl, ErrCodeBadRequest, "malformed create-room payload")
		return
	}
	if req.Name == "" {
		req.Name = "Player 1"
	}

	room, err := c.store.CreateRoom(game.NewParticipant(cl.id, req.Name))
	if err != nil {
		c.sendError(cl, ErrCodeBadRequest, "could not create room")
		return
	}
	cl.room = room.Code

	log.Printf("COORD: room %s created by %s (%s)", room.Code, req.Name, cl.id)
	c.trySend(cl, Outbound{Event: EventRoomCreated, Data: RoomCreatedPayload{Code: room.Code}})
}

func (c *Coordinator) handleJoinRoom(cl *Client, data json.RawMessage) {
	var req JoinRoomRequest
	if err := unmarshal(data, &req); err != nil {
		c.sendError(cl, ErrCodeBadRequest, "malformed join-room payload")
		return
	}
	if req.Name == "" {
		req.Name = "Player 2"
	}

	room, err := c.store.GetRoom(req.Code)
	if err != nil {
		c.sendError(cl, ErrCodeRoomNotFound, "room not found")
		return
	}

	if err := room.AddParticipant(game.NewParticipant(cl.id, req.Name)); err != nil {
		c.sendError(cl, ErrCodeRoomFull, "room is full")
		return
	}
	cl.room = room.Code
	room.Touch(c.now())

	log.Printf("COORD: %s (%s) joined room %s", req.Name, cl.id, room.Code)

	names := room.Names()
	c.broadcast(room, Outbound{Event: EventPlayerJoined, Data: PlayerJoinedPayload{
		PlayerCount: len(names),
		Players:     names,
	}})

	if room.Full() {
		c.broadcast(room, Outbound{Event: EventReadyToStart, Data: ReadyToStartPayload{Players: names}})
	}
}

// handleDeal serves both the initial start and the rematch re-deal; the two
// wire events share this single entry point so the dealing logic cannot
// drift between them.
func (c *Coordinator) handleDeal(cl *Client, data json.RawMessage) {
	var req DealRequest
	if err := unmarshal(data, &req); err != nil {
		c.sendError(cl, ErrCodeBadRequest, "malformed deal payload")
		return
	}

	room, err := c.store.GetRoom(req.Code)
	if err != nil {
		c.sendError(cl, ErrCodeRoomNotFound, "room not found")
		return
	}
	if !room.Full() {
		c.sendError(cl, ErrCodeNotEnoughPlayers, "both players must be present to start")
		return
	}

	deal, err := game.NewDeal(req.Cards, c.boardSize)
	if err != nil {
		if errors.Is(err, game.ErrEmptyCardPool) {
			c.sendError(cl, ErrCodeEmptyCardPool, "no cards supplied for the deal")
		} else {
			c.sendError(cl, ErrCodeBadRequest, "deal failed")
		}
		return
	}

	if err := room.ApplyDeal(deal); err != nil {
		c.sendError(cl, ErrCodeNotEnoughPlayers, "both players must be present to start")
		return
	}
	room.Touch(c.now())

	turnID := room.Participants[room.Turn].ID
	log.Printf("COORD: room %s dealt %d cards, first turn %s", room.Code, len(deal.Board), turnID)

	for i, p := range room.Participants {
		opponent := room.Participants[(i+1)%len(room.Participants)]
		c.sendToID(p.ID, Outbound{Event: EventGameStarted, Data: GameStartedPayload{
			Target:       p.Target,
			Board:        deal.Board,
			OpponentName: opponent.Name,
			TurnPlayerID: turnID,
		}})
	}
}

func (c *Coordinator) handleNextTurn(cl *Client, data json.RawMessage) {
	var req RoomRequest
	if err := unmarshal(data, &req); err != nil {
		c.sendError(cl, ErrCodeBadRequest, "malformed next-turn payload")
		return
	}

	room, err := c.store.GetRoom(req.Code)
	if err != nil {
		c.sendError(cl, ErrCodeRoomNotFound, "room not found")
		return
	}
	if room.Status != game.StatusPlaying {
		c.sendError(cl, ErrCodeWrongState, "game is not in progress")
		return
	}
	if !room.IsTurnOwner(cl.id) {
		c.sendError(cl, ErrCodeNotYourTurn, "it is not your turn")
		return
	}

	next := room.AdvanceTurn()
	room.Touch(c.now())

	c.broadcast(room, Outbound{Event: EventTurnUpdate, Data: TurnUpdatePayload{TurnPlayerID: next.ID}})
}

func (c *Coordinator) handleGuess(cl *Client, data json.RawMessage) {
	var req GuessRequest
	if err := unmarshal(data, &req); err != nil || req.Card == "" {
		c.sendError(cl, ErrCodeBadRequest, "malformed guess payload")
		return
	}

	room, err := c.store.GetRoom(req.Code)
	if err != nil {
		c.sendError(cl, ErrCodeRoomNotFound, "room not found")
		return
	}
	if room.Status != game.StatusPlaying {
		c.sendError(cl, ErrCodeWrongState, "game is not in progress")
		return
	}
	if !room.IsTurnOwner(cl.id) {
		c.sendError(cl, ErrCodeNotYourTurn, "it is not your turn")
		return
	}

	winner := room.ResolveGuess(cl.id, req.Card)
	if winner == nil {
		c.sendError(cl, ErrCodeBadRequest, "guesser is not seated in this room")
		return
	}
	room.Touch(c.now())

	log.Printf("COORD: room %s ended, winner %s", room.Code, winner.ID)
	c.broadcast(room, Outbound{Event: EventGameOver, Data: gameOverPayload(room, winner)})
}

func (c *Coordinator) handleRestartGame(cl *Client, data json.RawMessage) {
	var req RoomRequest
	if err := unmarshal(data, &req); err != nil {
		c.sendError(cl, ErrCodeBadRequest, "malformed restart payload")
		return
	}

	room, err := c.store.GetRoom(req.Code)
	if err != nil {
		c.sendError(cl, ErrCodeRoomNotFound, "room not found")
		return
	}

	p := room.Participant(cl.id)
	if p == nil {
		c.sendError(cl, ErrCodeBadRequest, "you are not seated in this room")
		return
	}

	allReady := room.MarkReady(cl.id)
	room.Touch(c.now())

	if allReady {
		// Both consent: the client that drove the handshake follows up
		// with a restart-deal carrying a fresh card pool.
		c.broadcast(room, Outbound{Event: EventRestartLoading})
		return
	}

	c.broadcast(room, Outbound{Event: EventPlayerStatusUpdate, Data: PlayerStatusPayload{
		PlayerID: cl.id,
		Name:     p.Name,
	}})
}

// handleDisconnect defines the transition for a dropped connection: the room
// is forfeited to the remaining participant and discarded.
func (c *Coordinator) handleDisconnect(cl *Client) {
	c.drop(cl)

	if cl.room == "" {
		return
	}
	room, err := c.store.GetRoom(cl.room)
	if err != nil {
		return
	}

	leaver := room.Participant(cl.id)
	if leaver == nil {
		return
	}

	c.store.RemoveRoom(room.Code)
	log.Printf("COORD: %s left room %s, room discarded", cl.id, room.Code)

	opponent := room.Opponent(cl.id)
	if opponent == nil {
		return
	}

	wasPlaying := room.Status == game.StatusPlaying

	c.sendToID(opponent.ID, Outbound{Event: EventPlayerLeft, Data: PlayerLeftPayload{
		PlayerID: cl.id,
		Name:     leaver.Name,
	}})

	if wasPlaying {
		winner := room.Forfeit(cl.id)
		c.sendToID(opponent.ID, Outbound{Event: EventGameOver, Data: gameOverPayload(room, winner)})
	}
}

// broadcast sends an event to every seated participant with a live client.
func (c *Coordinator) broadcast(room *game.Room, out Outbound) {
	for _, p := range room.Participants {
		c.sendToID(p.ID, out)
	}
}

func (c *Coordinator) sendToID(id string, out Outbound) {
	if cl, ok := c.clients[id]; ok {
		c.trySend(cl, out)
	}
}

func (c *Coordinator) sendError(cl *Client, code, message string) {
	c.trySend(cl, Outbound{Event: EventError, Data: ErrorPayload{Code: code, Message: message}})
}

// trySend queues without blocking; a client with a full buffer is dropped
// and its connection torn down by the pumps.
func (c *Coordinator) trySend(cl *Client, out Outbound) {
	if cl.closed {
		return
	}
	select {
	case cl.send <- out:
	default:
		c.drop(cl)
	}
}

func (c *Coordinator) drop(cl *Client) {
	if cl.closed {
		return
	}
	cl.closed = true
	close(cl.send)
	delete(c.clients, cl.id)
}

func gameOverPayload(room *game.Room, winner *game.Participant) GameOverPayload {
	revealed := make([]RevealedPlayer, 0, len(room.Participants))
	for _, p := range room.Participants {
		revealed = append(revealed, RevealedPlayer{ID: p.ID, Name: p.Name, Target: p.Target})
	}
	return GameOverPayload{WinnerID: winner.ID, Players: revealed}
}

func unmarshal(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(data, v)
}
