package store

import (
	"strings"
	"testing"
	"time"

	"kartibul/internal/config"
	"kartibul/internal/game"
)

func testConfig() *config.ServerConfig {
	cfg := config.DefaultConfig()
	cfg.Server.Host = "localhost"
	cfg.Server.Port = "0"
	return cfg
}

func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore(testConfig())

	if store == nil {
		t.Fatal("NewMemoryStore returned nil")
	}

	if store.rooms == nil {
		t.Fatal("rooms map not initialized")
	}

	if store.RoomCount() != 0 {
		t.Errorf("expected empty store, got %d rooms", store.RoomCount())
	}
}

func TestCreateRoom(t *testing.T) {
	store := NewMemoryStore(testConfig())

	t.Run("creates room with valid code", func(t *testing.T) {
		room, err := store.CreateRoom(game.NewParticipant("p1", "Alice"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(room.Code) != 4 {
			t.Errorf("expected room code length 4, got %d", len(room.Code))
		}

		for _, char := range room.Code {
			if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
				t.Errorf("room code contains invalid character: %c", char)
			}
		}
	})

	t.Run("creates room with correct initial state", func(t *testing.T) {
		room, err := store.CreateRoom(game.NewParticipant("p1", "Alice"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if room.Status != game.StatusWaiting {
			t.Errorf("expected status %q, got %q", game.StatusWaiting, room.Status)
		}
		if len(room.Participants) != 1 {
			t.Errorf("expected 1 participant, got %d", len(room.Participants))
		}
	})

	t.Run("registers room for lookup", func(t *testing.T) {
		room, err := store.CreateRoom(game.NewParticipant("p1", "Alice"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := store.GetRoom(room.Code)
		if err != nil {
			t.Fatalf("GetRoom failed for fresh room: %v", err)
		}
		if got != room {
			t.Error("GetRoom returned a different room")
		}
	})
}

func TestCreateRoom_UniqueCodes(t *testing.T) {
	store := NewMemoryStore(testConfig())

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		room, err := store.CreateRoom(game.NewParticipant("p", "P"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[room.Code] {
			t.Fatalf("duplicate room code issued: %s", room.Code)
		}
		seen[room.Code] = true
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	store := NewMemoryStore(testConfig())

	_, err := store.GetRoom("ZZZZ")
	if err == nil {
		t.Fatal("expected error for unknown room")
	}
}

func TestGetRoom_CaseInsensitive(t *testing.T) {
	store := NewMemoryStore(testConfig())

	room, err := store.CreateRoom(game.NewParticipant("p1", "Alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetRoom(strings.ToLower(room.Code))
	if err != nil {
		t.Fatalf("lowercase lookup failed: %v", err)
	}
	if got != room {
		t.Error("lowercase lookup returned a different room")
	}
}

func TestRemoveRoom(t *testing.T) {
	store := NewMemoryStore(testConfig())

	room, err := store.CreateRoom(game.NewParticipant("p1", "Alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.RemoveRoom(room.Code)

	if _, err := store.GetRoom(room.Code); err == nil {
		t.Error("room still present after RemoveRoom")
	}

	// Removing again is a no-op.
	store.RemoveRoom(room.Code)
}

func TestCleanupIdleRooms(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RoomTimeout = 1 * time.Hour

	store := NewMemoryStore(cfg)

	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return base })

	stale, err := store.CreateRoom(game.NewParticipant("p1", "Alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fresh, err := store.CreateRoom(game.NewParticipant("p2", "Bob"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two hours pass; only the fresh room sees activity.
	store.SetClock(func() time.Time { return base.Add(2 * time.Hour) })
	fresh.Touch(base.Add(2 * time.Hour))

	removed := store.CleanupIdleRooms()
	if removed != 1 {
		t.Errorf("expected 1 eviction, got %d", removed)
	}

	if _, err := store.GetRoom(stale.Code); err == nil {
		t.Error("stale room survived the sweep")
	}
	if _, err := store.GetRoom(fresh.Code); err != nil {
		t.Errorf("fresh room was evicted: %v", err)
	}
}
