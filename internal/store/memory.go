package store

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"kartibul/internal/config"
	"kartibul/internal/game"
)

// roomCodeAlphabet is uppercase base-36: codes stay shareable and URL-safe.
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MemoryStore holds all live rooms in memory. Rooms do not survive a process
// restart; idle rooms are evicted by the sweeper.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room

	codeLength  int
	roomTimeout time.Duration

	// now is swappable so eviction can be tested with a fake clock.
	now func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(cfg *config.ServerConfig) *MemoryStore {
	return &MemoryStore{
		rooms:       make(map[string]*game.Room),
		codeLength:  cfg.Server.RoomCodeLength,
		roomTimeout: cfg.Server.RoomTimeout,
		now:         time.Now,
	}
}

// SetClock replaces the store's clock. Test hook.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

// CreateRoom creates a new room with the creator seated at index 0. The code
// is regenerated until it does not collide with a live room, so a create can
// never overwrite an existing session.
func (s *MemoryStore) CreateRoom(creator *game.Participant) (*game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		var err error
		code, err = generateRoomCode(s.codeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}
		if _, exists := s.rooms[code]; !exists {
			break
		}
	}

	room := game.NewRoom(code, creator, s.now())
	s.rooms[code] = room
	return room, nil
}

// GetRoom retrieves a room by code. Codes are case-normalized so a player
// typing a shared code in lowercase still lands in the room.
func (s *MemoryStore) GetRoom(code string) (*game.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, exists := s.rooms[strings.ToUpper(code)]
	if !exists {
		return nil, fmt.Errorf("room %s: %w", code, game.ErrRoomNotFound)
	}

	return room, nil
}

// RemoveRoom discards a room. Removing an unknown code is a no-op.
func (s *MemoryStore) RemoveRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, strings.ToUpper(code))
}

// RoomCount returns the number of live rooms.
func (s *MemoryStore) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rooms)
}

// CleanupIdleRooms evicts rooms whose last activity is older than the
// configured room timeout. Returns the number of rooms removed.
func (s *MemoryStore) CleanupIdleRooms() int {
	cutoff := s.now().Add(-s.roomTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for code, room := range s.rooms {
		if room.LastActive().Before(cutoff) {
			delete(s.rooms, code)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the idle-room eviction loop until ctx is cancelled.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupIdleRooms()
			}
		}
	}()
}

// generateRoomCode generates an uppercase base-36 code of the given length
func generateRoomCode(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	for i := range b {
		b[i] = roomCodeAlphabet[b[i]%byte(len(roomCodeAlphabet))]
	}

	return string(b), nil
}
