package game

import (
	"sync"
	"time"
)

// Status represents the current state of a room
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

// maxParticipants is fixed: the game is strictly two-player.
const maxParticipants = 2

// Room is one game session keyed by a short public code. Participant order
// is significant: index 0 is the creator and the two indices drive turn
// rotation. All event handling for a room is serialized by the coordinator;
// the mutex exists because the idle sweeper inspects rooms concurrently.
type Room struct {
	Code         string
	Status       Status
	Participants []*Participant
	Board        []string
	Turn         int
	CreatedAt    time.Time

	lastActive time.Time

	mu sync.RWMutex
}

// NewRoom creates a room in the waiting state with the creator as
// participant 0.
func NewRoom(code string, creator *Participant, now time.Time) *Room {
	return &Room{
		Code:         code,
		Status:       StatusWaiting,
		Participants: []*Participant{creator},
		CreatedAt:    now,
		lastActive:   now,
	}
}

// AddParticipant appends a participant to the room
func (r *Room) AddParticipant(p *Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Participants) >= maxParticipants {
		return ErrRoomFull
	}

	r.Participants = append(r.Participants, p)
	return nil
}

// Participant retrieves a participant by ID, or nil if absent.
func (r *Room) Participant(id string) *Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Index returns the participant's position in the turn rotation, or -1.
func (r *Room) Index(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, p := range r.Participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Opponent returns the other participant, or nil if the room is not full.
func (r *Room) Opponent(id string) *Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.Participants) < maxParticipants {
		return nil
	}
	for i, p := range r.Participants {
		if p.ID == id {
			return r.Participants[(i+1)%maxParticipants]
		}
	}
	return nil
}

// Full reports whether both seats are taken.
func (r *Room) Full() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.Participants) == maxParticipants
}

// Names returns the display names in seat order.
func (r *Room) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		names = append(names, p.Name)
	}
	return names
}

// ApplyDeal installs a deal result: board, both targets, the fresh first-turn
// index, and the playing state. Ready flags from a rematch handshake are
// cleared so the next handshake starts over.
func (r *Room) ApplyDeal(d *Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Participants) < maxParticipants {
		return ErrNotEnoughPlayers
	}

	r.Board = d.Board
	r.Participants[0].Target = d.Board[d.TargetIndex[0]]
	r.Participants[1].Target = d.Board[d.TargetIndex[1]]
	r.Turn = d.FirstTurn
	r.Status = StatusPlaying
	for _, p := range r.Participants {
		p.Ready = false
	}
	return nil
}

// MarkReady sets the rematch ready flag for one participant and reports
// whether both participants have now signaled readiness. Marking an already
// ready participant again is idempotent.
func (r *Room) MarkReady(id string) (allReady bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.Participants {
		if p.ID == id {
			p.Ready = true
		}
	}

	if len(r.Participants) < maxParticipants {
		return false
	}
	for _, p := range r.Participants {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Touch records activity on the room for idle eviction.
func (r *Room) Touch(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastActive = now
}

// LastActive returns the time of the most recent event touching this room.
func (r *Room) LastActive() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastActive
}
