package searcher

import (
	"errors"
	"fmt"
	"math"
	"time"

	"jump61/game"
	"jump61/metrics"
)

const (
	// DefaultDepth is the search depth in plies when none is configured.
	DefaultDepth = 4

	// WinValue is the static score of a decided position.
	WinValue = 1000
)

// ErrGameOver is returned by FindMove when the position already has a
// winner and there is no move to search for.
var ErrGameOver = errors.New("game already has a winner")

type Option func(m *Minimax)

// Minimax picks moves by a depth-limited minimax search with alpha-beta
// pruning over the game tree. It explores on a single working copy of
// the caller's board, applying and undoing tentative moves, and is
// deterministic: for a fixed position, side, and depth it always returns
// the same move. Not safe for concurrent use.
type Minimax struct {
	depth    int
	winValue int
	evaluate game.Evaluate
	metric   metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithWinValue(value int) Option {
	return func(m *Minimax) {
		if value > 0 {
			m.winValue = value
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func New(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		winValue: WinValue,
		evaluate: game.EvaluateMaterial,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindMove searches the game tree to the configured depth and returns
// the best move for side. The caller's board is never mutated: the
// search runs on a working copy with its own empty undo history and no
// notifier. side must be the side to move on b.
func (m *Minimax) FindMove(b *game.Board, side game.Side) (game.Move, error) {
	if winner, won := b.Winner(); won {
		return game.Move{}, fmt.Errorf("find move for %s: winner is %s: %w", side, winner, ErrGameOver)
	}
	if toMove := b.WhoseMove(); toMove != side {
		return game.Move{}, fmt.Errorf("find move: %s is not the side to move (%s is)", side, toMove)
	}

	work := game.NewFrom(b)
	sense := 1
	if side == game.Blue {
		sense = -1
	}

	m.metric = metrics.SearchMetric{Depth: m.depth}
	start := time.Now()
	var found game.Move
	m.minimax(work, m.depth, true, sense, math.MinInt, math.MaxInt, &found)
	m.metric.Duration = time.Since(start)

	if found == (game.Move{}) {
		panic("searcher: no legal move found in a live position")
	}
	if !work.Equal(b) {
		panic("searcher: working board not restored after search")
	}
	return found, nil
}

// Metrics returns measurements from the most recent FindMove call.
func (m *Minimax) Metrics() metrics.SearchMetric {
	return m.metric
}

// minimax returns the value of board b searched to depth plies, with the
// usual alpha-beta window. sense is +1 when the side to move is the
// maximizing side (Red) and -1 otherwise; it flips at each ply. The
// chosen move is written to found only when saveMove is set, which the
// root call alone does. Moves are tried in row-major order, so among
// equal-valued moves the first one found is kept.
func (m *Minimax) minimax(b *game.Board, depth int, saveMove bool, sense, alpha, beta int, found *game.Move) int {
	if _, won := b.Winner(); won || depth == 0 {
		m.metric.Evals++
		return m.evaluate(b, m.winValue)
	}
	m.metric.Nodes++

	side := b.WhoseMove()
	if sense == 1 {
		best := math.MinInt
	maximize:
		for r := 1; r <= b.Size(); r++ {
			for c := 1; c <= b.Size(); c++ {
				if !b.IsLegal(side, r, c) {
					continue
				}
				m.apply(b, side, r, c)
				value := m.minimax(b, depth-1, false, -sense, alpha, beta, found)
				m.unapply(b)
				if value > best {
					best = value
					if value > alpha {
						alpha = value
					}
					if saveMove {
						*found = game.Move{Row: r, Col: c}
					}
				}
				if beta <= alpha {
					m.metric.Cutoffs++
					break maximize
				}
			}
		}
		return best
	}

	best := math.MaxInt
minimize:
	for r := 1; r <= b.Size(); r++ {
		for c := 1; c <= b.Size(); c++ {
			if !b.IsLegal(side, r, c) {
				continue
			}
			m.apply(b, side, r, c)
			value := m.minimax(b, depth-1, false, -sense, alpha, beta, found)
			m.unapply(b)
			if value < best {
				best = value
				if value < beta {
					beta = value
				}
				if saveMove {
					*found = game.Move{Row: r, Col: c}
				}
			}
			if beta <= alpha {
				m.metric.Cutoffs++
				break minimize
			}
		}
	}
	return best
}

// apply plays a tentative move on the working board. Legality was
// checked by the caller, so a failure is a programming error.
func (m *Minimax) apply(b *game.Board, side game.Side, r, c int) {
	if err := b.AddSpot(side, r, c); err != nil {
		panic(fmt.Sprintf("searcher: tentative move rejected: %v", err))
	}
}

// unapply reverses the matching tentative move. Every apply during the
// search is paired with exactly one unapply.
func (m *Minimax) unapply(b *game.Board) {
	if err := b.Undo(); err != nil {
		panic(fmt.Sprintf("searcher: undo of tentative move failed: %v", err))
	}
}
