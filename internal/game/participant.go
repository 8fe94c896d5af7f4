package game

import (
	"time"
)

// Participant is one of the two players in a room. ID is the opaque
// connection identifier assigned by the transport layer.
type Participant struct {
	ID       string
	Name     string
	Ready    bool   // set during the rematch handshake, cleared on every deal
	Target   string // hidden card this participant's opponent must guess; empty until dealt
	JoinedAt time.Time
}

// NewParticipant creates a new participant
func NewParticipant(id, name string) *Participant {
	return &Participant{
		ID:       id,
		Name:     name,
		JoinedAt: time.Now(),
	}
}

// HasTarget reports whether a target card has been dealt to this participant.
func (p *Participant) HasTarget() bool {
	return p.Target != ""
}
