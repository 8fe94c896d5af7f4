package game

import (
	"fmt"
	"testing"
)

func cardPool(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = fmt.Sprintf("c%d", i+1)
	}
	return pool
}

func TestNewDeal_EmptyPool(t *testing.T) {
	_, err := NewDeal(nil, DefaultBoardSize)
	if err != ErrEmptyCardPool {
		t.Errorf("expected ErrEmptyCardPool, got %v", err)
	}
}

func TestNewDeal_BoardSize(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		want     int
	}{
		{"pool larger than board", 50, 36},
		{"pool exactly board size", 36, 36},
		{"pool smaller than board", 10, 10},
		{"single card", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal, err := NewDeal(cardPool(tt.poolSize), DefaultBoardSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(deal.Board) != tt.want {
				t.Errorf("board size = %d, want %d", len(deal.Board), tt.want)
			}
		})
	}
}

func TestNewDeal_BoardIsSubsetOfPool(t *testing.T) {
	pool := cardPool(50)
	inPool := make(map[string]bool, len(pool))
	for _, c := range pool {
		inPool[c] = true
	}

	deal, err := NewDeal(pool, DefaultBoardSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool, len(deal.Board))
	for _, c := range deal.Board {
		if !inPool[c] {
			t.Errorf("board card %q not in pool", c)
		}
		if seen[c] {
			t.Errorf("board card %q duplicated from a duplicate-free pool", c)
		}
		seen[c] = true
	}
}

func TestNewDeal_DistinctTargets(t *testing.T) {
	// Resampling is probabilistic; repeat to catch a regression.
	for i := 0; i < 200; i++ {
		deal, err := NewDeal(cardPool(2), DefaultBoardSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deal.TargetIndex[0] == deal.TargetIndex[1] {
			t.Fatalf("target indices equal on a %d-card board: %v", len(deal.Board), deal.TargetIndex)
		}
	}
}

func TestNewDeal_SingleCardBoard(t *testing.T) {
	deal, err := NewDeal(cardPool(1), DefaultBoardSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With one card both targets necessarily collide.
	if deal.TargetIndex[0] != 0 || deal.TargetIndex[1] != 0 {
		t.Errorf("target indices = %v, want [0 0]", deal.TargetIndex)
	}
}

func TestNewDeal_FirstTurnInRange(t *testing.T) {
	sawSeat := [2]bool{}
	for i := 0; i < 100; i++ {
		deal, err := NewDeal(cardPool(4), DefaultBoardSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deal.FirstTurn != 0 && deal.FirstTurn != 1 {
			t.Fatalf("first turn = %d, want 0 or 1", deal.FirstTurn)
		}
		sawSeat[deal.FirstTurn] = true
	}
	if !sawSeat[0] || !sawSeat[1] {
		t.Error("first turn never varied across 100 deals")
	}
}

func TestNewDeal_DuplicateIdentifiersKept(t *testing.T) {
	// Duplicate card identifiers are accepted as-is: targets are distinct
	// indices but may carry the same value.
	pool := []string{"dup", "dup"}

	deal, err := NewDeal(pool, DefaultBoardSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.TargetIndex[0] == deal.TargetIndex[1] {
		t.Errorf("target indices should differ even with duplicate values: %v", deal.TargetIndex)
	}
	if deal.Board[deal.TargetIndex[0]] != deal.Board[deal.TargetIndex[1]] {
		t.Error("expected both targets to hold the duplicated value")
	}
}
