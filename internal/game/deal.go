package game

import (
	"math/rand/v2"
)

// DefaultBoardSize is the 6x6 grid shown to both players.
const DefaultBoardSize = 36

// Deal is the outcome of shuffling a card pool: the shared board, one target
// index per seat, and the randomized first-turn seat.
type Deal struct {
	Board       []string
	TargetIndex [2]int
	FirstTurn   int
}

// NewDeal shuffles the supplied card pool and selects the board and targets.
// This is the single entry point for card assignment: the initial start and
// every rematch go through it. The pool is taken as-is from the initiating
// client; duplicate identifiers are not deduplicated, so the two targets are
// distinct indices but may share a value.
func NewDeal(pool []string, boardSize int) (*Deal, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyCardPool
	}
	if boardSize <= 0 {
		boardSize = DefaultBoardSize
	}

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	board := shuffled[:min(boardSize, len(shuffled))]

	first := rand.IntN(len(board))
	second := rand.IntN(len(board))
	for len(board) > 1 && second == first {
		second = rand.IntN(len(board))
	}

	return &Deal{
		Board:       board,
		TargetIndex: [2]int{first, second},
		FirstTurn:   rand.IntN(2),
	}, nil
}
