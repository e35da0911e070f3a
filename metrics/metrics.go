package metrics

import (
	"time"
)

// SearchMetric describes one minimax search: how deep it looked, how much
// of the game tree it touched, and how long it took.
type SearchMetric struct {
	Depth    int           // search depth in plies
	Nodes    int           // interior nodes expanded
	Evals    int           // static evaluations at leaves and won positions
	Cutoffs  int           // alpha-beta prunes
	Duration time.Duration // wall time of the search
}

// MoveRecord describes one move played in a game, with the search that
// produced it (zero-valued for non-searching players).
type MoveRecord struct {
	Step int    // 1-based move number within the game
	Side string // the mover
	Row  int
	Col  int
	SearchMetric
}

// GameRecord describes one completed game.
type GameRecord struct {
	ID        int
	BoardSize int
	Winner    string
	Moves     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
