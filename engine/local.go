package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"jump61/game"
	"jump61/metrics"
)

// Local runs a game between two players on an authoritative board it
// owns. Players only ever see the board through FindMove; every returned
// move is validated and applied here.
type Local struct {
	Board   *game.Board
	players map[game.Side]Player

	// MaxMoves aborts runaway games; 0 means no limit.
	MaxMoves int

	records []metrics.MoveRecord
}

// NewLocal creates an engine for a fresh size x size game between red
// and blue. The players' sides must be Red and Blue respectively.
func NewLocal(size int, red, blue Player) *Local {
	if red.Side() != game.Red || blue.Side() != game.Blue {
		panic("engine: players must be assigned red and blue")
	}
	return &Local{
		Board: game.New(size),
		players: map[game.Side]Player{
			game.Red:  red,
			game.Blue: blue,
		},
	}
}

// Run executes the game loop until one side holds the whole board and
// returns the winner.
func (e *Local) Run() (game.Side, error) {
	start := time.Now()
	log.Info().
		Int("size", e.Board.Size()).
		Str("first", e.Board.WhoseMove().String()).
		Msg("game started")

	for step := 1; ; step++ {
		if winner, won := e.Board.Winner(); won {
			log.Info().
				Str("winner", winner.String()).
				Int("moves", e.Board.NumMoves()).
				Dur("elapsed", time.Since(start)).
				Msg("game over")
			return winner, nil
		}
		if e.MaxMoves > 0 && step > e.MaxMoves {
			return game.Empty, fmt.Errorf("engine: no winner after %d moves", e.MaxMoves)
		}

		side := e.Board.WhoseMove()
		player := e.players[side]

		move, err := player.FindMove(e.Board)
		if err != nil {
			return game.Empty, fmt.Errorf("engine: %s to move: %w", side, err)
		}
		if err := e.Board.AddSpot(side, move.Row, move.Col); err != nil {
			return game.Empty, fmt.Errorf("engine: %s played %s: %w", side, move, err)
		}

		record := metrics.MoveRecord{
			Step: step,
			Side: side.String(),
			Row:  move.Row,
			Col:  move.Col,
		}
		if ai, ok := player.(*AIPlayer); ok {
			record.SearchMetric = ai.Metrics()
		}
		e.records = append(e.records, record)

		log.Debug().
			Int("step", step).
			Str("side", side.String()).
			Str("move", move.String()).
			Int("pieces", e.Board.NumPieces()).
			Msg("move played")
	}
}

// MoveRecords returns the per-move records collected during Run.
func (e *Local) MoveRecords() []metrics.MoveRecord {
	return e.records
}
