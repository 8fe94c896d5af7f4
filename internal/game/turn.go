package game

// Turn handling. These are pure state transforms on the binary turn pointer;
// whether the caller is allowed to trigger them is decided by the coordinator.

// CurrentParticipant returns the participant whose turn it is, or nil when
// the room is not playing.
func (r *Room) CurrentParticipant() *Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Status != StatusPlaying || len(r.Participants) < maxParticipants {
		return nil
	}
	return r.Participants[r.Turn]
}

// AdvanceTurn flips the turn pointer and returns the participant now on turn.
func (r *Room) AdvanceTurn() *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Turn = (r.Turn + 1) % maxParticipants
	return r.Participants[r.Turn]
}

// IsTurnOwner reports whether the given participant holds the current turn.
func (r *Room) IsTurnOwner(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.Participants) < maxParticipants {
		return false
	}
	return r.Participants[r.Turn].ID == id
}

// ResolveGuess compares the guessed card against the opponent's target and
// ends the game. Guessing the opponent's target wins; any other guess loses
// immediately, there is no second attempt. Returns the winner.
func (r *Room) ResolveGuess(guesserID, card string) *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	var guesser, opponent *Participant
	for i, p := range r.Participants {
		if p.ID == guesserID {
			guesser = p
			opponent = r.Participants[(i+1)%maxParticipants]
		}
	}
	if guesser == nil || opponent == nil {
		return nil
	}

	r.Status = StatusEnded

	if card == opponent.Target {
		return guesser
	}
	return opponent
}

// Forfeit ends the game in favor of the remaining participant when the other
// one disconnects. Returns the winner, or nil if the leaver was not seated.
func (r *Room) Forfeit(leaverID string) *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Participants) < maxParticipants {
		return nil
	}
	for i, p := range r.Participants {
		if p.ID == leaverID {
			r.Status = StatusEnded
			return r.Participants[(i+1)%maxParticipants]
		}
	}
	return nil
}
