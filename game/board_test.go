package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewBoard(t *testing.T) {
	b := New(4)

	require.Equal(t, 4, b.Size())
	require.Equal(t, 0, b.NumPieces())
	require.Equal(t, 0, b.NumMoves())
	require.Equal(t, Red, b.WhoseMove(), "red moves first on an empty board")
	for n := 0; n < 16; n++ {
		require.Equal(t, Square{}, b.GetSq(n))
	}

	_, won := b.Winner()
	require.False(t, won, "an empty board has no winner")
}

func TestNewBoardBadSize(t *testing.T) {
	require.Panics(t, func() { New(0) })
}

func TestSquareNumbering(t *testing.T) {
	b := New(3)

	require.Equal(t, 0, b.SqNum(1, 1))
	require.Equal(t, 4, b.SqNum(2, 2))
	require.Equal(t, 8, b.SqNum(3, 3))
	for n := 0; n < 9; n++ {
		require.Equal(t, n, b.SqNum(b.Row(n), b.Col(n)), "square %d should round-trip", n)
	}
}

func TestExists(t *testing.T) {
	b := New(3)

	require.True(t, b.Exists(1, 1))
	require.True(t, b.Exists(3, 3))
	require.False(t, b.Exists(0, 1))
	require.False(t, b.Exists(1, 4))
	require.False(t, b.Exists(4, 1))
}

func TestNeighbors(t *testing.T) {
	b := New(3)

	require.Equal(t, 2, b.Neighbors(1, 1), "corner")
	require.Equal(t, 2, b.Neighbors(3, 3), "corner")
	require.Equal(t, 3, b.Neighbors(1, 2), "edge")
	require.Equal(t, 3, b.Neighbors(2, 1), "edge")
	require.Equal(t, 4, b.Neighbors(2, 2), "interior")

	one := New(1)
	require.Equal(t, 0, one.Neighbors(1, 1), "a 1x1 board's square has no neighbors")
}

func TestIsLegal(t *testing.T) {
	b := New(3)
	b.Set(1, 1, 1, Red)
	b.Set(1, 2, 1, Blue)

	require.True(t, b.IsLegal(Red, 1, 1), "own square is playable")
	require.True(t, b.IsLegal(Red, 2, 2), "empty square is playable")
	require.False(t, b.IsLegal(Red, 1, 2), "opponent square is not playable")
	require.False(t, b.IsLegal(Red, 0, 5), "out-of-range square is not playable")

	// A won board freezes all play.
	won := New(2)
	for r := 1; r <= 2; r++ {
		for c := 1; c <= 2; c++ {
			won.Set(r, c, 1, Blue)
		}
	}
	require.False(t, won.IsLegal(Blue, 1, 1), "no move is legal once the game is won")
}

func TestAddSpotSimple(t *testing.T) {
	b := New(3)

	require.NoError(t, b.AddSpot(Red, 2, 2))
	require.Equal(t, Square{Side: Red, Spots: 1}, b.Get(2, 2))
	require.Equal(t, 1, b.NumPieces())
	require.Equal(t, 1, b.NumMoves())
	require.Equal(t, Blue, b.WhoseMove())

	require.NoError(t, b.AddSpot(Blue, 1, 1))
	require.Equal(t, Square{Side: Blue, Spots: 1}, b.Get(1, 1))
	require.Equal(t, 2, b.NumPieces())
	require.Equal(t, Red, b.WhoseMove())
}

func TestAddSpotErrors(t *testing.T) {
	t.Run("opponent square", func(t *testing.T) {
		b := New(3)
		b.Set(1, 1, 1, Blue)

		err := b.AddSpot(Red, 1, 1)
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, Square{Side: Blue, Spots: 1}, b.Get(1, 1), "failed move must not change the board")
		require.Equal(t, 0, b.NumMoves())
	})

	t.Run("out of range", func(t *testing.T) {
		b := New(3)
		require.ErrorIs(t, b.AddSpot(Red, 4, 1), ErrIllegalMove)
	})

	t.Run("game already won", func(t *testing.T) {
		b := New(2)
		for r := 1; r <= 2; r++ {
			for c := 1; c <= 2; c++ {
				b.Set(r, c, 1, Red)
			}
		}
		require.ErrorIs(t, b.AddSpot(Red, 1, 1), ErrIllegalMove)
	})

	t.Run("failed move leaves no history", func(t *testing.T) {
		b := New(3)
		b.Set(1, 1, 1, Blue)
		require.Error(t, b.AddSpot(Red, 1, 1))
		require.ErrorIs(t, b.Undo(), ErrNoHistory)
	})
}

func TestSideToMoveAlternation(t *testing.T) {
	b := New(3)
	moves := []Move{{1, 1}, {3, 3}, {1, 1}, {3, 3}, {2, 2}}

	want := Red
	for _, m := range moves {
		require.Equal(t, want, b.WhoseMove())
		require.NoError(t, b.AddSpot(want, m.Row, m.Col))
		want = want.Opposite()
	}
}

func TestCornerOverflow(t *testing.T) {
	// A corner on a 3x3 board has two neighbors, so its threshold is 2:
	// a third spot overflows, leaving one spot and sending one spot to
	// each orthogonal neighbor, converting them.
	b := New(3)
	b.Set(1, 1, 2, Red)

	require.NoError(t, b.AddSpot(Red, 1, 1))

	require.Equal(t, Square{Side: Red, Spots: 1}, b.Get(1, 1))
	require.Equal(t, Square{Side: Red, Spots: 1}, b.Get(1, 2))
	require.Equal(t, Square{Side: Red, Spots: 1}, b.Get(2, 1))
	require.Equal(t, 3, b.NumPieces(), "overflow must redistribute, not create or destroy spots")
}

func TestOverflowConvertsOpponent(t *testing.T) {
	b := New(3)
	b.Set(1, 1, 2, Red)
	b.Set(1, 2, 2, Blue)
	b.Set(3, 3, 1, Blue) // keeps the cascade from ending the game

	require.NoError(t, b.AddSpot(Red, 1, 1))

	require.Equal(t, Red, b.Get(1, 2).Side, "overflow converts the neighbor to the mover's side")
	require.Equal(t, 3, b.Get(1, 2).Spots)
}

func TestOverflowSubtractsThresholdOnly(t *testing.T) {
	// A square seeded far above its threshold keeps spots-threshold
	// after one overflow and is re-examined until stable.
	b := New(3)
	b.Set(2, 2, 8, Red)
	b.Set(3, 3, 1, Blue)

	require.NoError(t, b.AddSpot(Red, 2, 2))

	// 9 spots, threshold 4: overflows twice, ending at 1.
	require.Equal(t, Square{Side: Red, Spots: 1}, b.Get(2, 2))
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			require.LessOrEqual(t, b.Get(r, c).Spots, b.Neighbors(r, c),
				"square %d %d must not exceed its threshold after a move", r, c)
		}
	}
}

func TestChainReaction(t *testing.T) {
	// Every red square at its threshold, the blue center one spot short
	// of its own. Red's move at (1 2) overflows, converting the center;
	// that makes the board all red, which freezes the cascade.
	b := New(3)
	b.Set(1, 1, 2, Red)
	b.Set(1, 2, 3, Red)
	b.Set(1, 3, 2, Red)
	b.Set(2, 1, 3, Red)
	b.Set(2, 2, 3, Blue)
	b.Set(2, 3, 3, Red)
	b.Set(3, 1, 2, Red)
	b.Set(3, 2, 3, Red)
	b.Set(3, 3, 2, Red)
	before := b.NumPieces()

	require.NoError(t, b.AddSpot(Red, 1, 2))

	winner, won := b.Winner()
	require.True(t, won)
	require.Equal(t, Red, winner)
	require.Equal(t, before+1, b.NumPieces(), "cascade must conserve spots")

	want := [][]Square{
		{{Red, 3}, {Red, 1}, {Red, 3}},
		{{Red, 3}, {Red, 4}, {Red, 3}},
		{{Red, 2}, {Red, 3}, {Red, 2}},
	}
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			require.Equal(t, want[r-1][c-1], b.Get(r, c), "square %d %d", r, c)
		}
	}
}

func TestOneByOneBoard(t *testing.T) {
	b := New(1)

	require.NoError(t, b.AddSpot(Red, 1, 1))

	winner, won := b.Winner()
	require.True(t, won, "a single move wins a 1x1 board")
	require.Equal(t, Red, winner)
	require.Equal(t, 1, b.Get(1, 1).Spots, "a won board freezes before cascading")
}

func TestWinner(t *testing.T) {
	t.Run("full single-side board", func(t *testing.T) {
		for _, size := range []int{1, 2, 3, 5} {
			b := New(size)
			for r := 1; r <= size; r++ {
				for c := 1; c <= size; c++ {
					b.Set(r, c, 1, Blue)
				}
			}
			winner, won := b.Winner()
			require.True(t, won, "size %d", size)
			require.Equal(t, Blue, winner)
		}
	})

	t.Run("mixed full board", func(t *testing.T) {
		b := New(2)
		b.Set(1, 1, 1, Red)
		b.Set(1, 2, 1, Blue)
		b.Set(2, 1, 1, Red)
		b.Set(2, 2, 1, Blue)

		_, won := b.Winner()
		require.False(t, won)
	})

	t.Run("partially empty board", func(t *testing.T) {
		b := New(2)
		b.Set(1, 1, 1, Red)

		_, won := b.Winner()
		require.False(t, won, "a board with empty squares has no winner")
	})
}

func TestUndo(t *testing.T) {
	t.Run("restores the board after a simple move", func(t *testing.T) {
		b := New(3)
		b.Set(1, 1, 1, Red)
		before := NewFrom(b)

		require.NoError(t, b.AddSpot(Blue, 2, 2))
		require.NoError(t, b.Undo())

		require.True(t, b.Equal(before))
		require.Equal(t, 0, b.NumMoves(), "undo must roll the move counter back")
	})

	t.Run("restores the board after a cascade", func(t *testing.T) {
		b := New(3)
		b.Set(1, 1, 2, Red)
		b.Set(1, 2, 3, Red)
		b.Set(2, 1, 3, Blue)
		b.Set(2, 2, 4, Blue)
		before := NewFrom(b)

		require.NoError(t, b.AddSpot(Red, 1, 1))
		require.False(t, b.Equal(before), "the cascade should have changed several squares")
		require.NoError(t, b.Undo())
		require.True(t, b.Equal(before), "undo must reverse every square the cascade touched")
	})

	t.Run("multiple moves undo in LIFO order", func(t *testing.T) {
		b := New(3)
		state0 := NewFrom(b)
		require.NoError(t, b.AddSpot(Red, 1, 1))
		state1 := NewFrom(b)
		require.NoError(t, b.AddSpot(Blue, 3, 3))

		require.NoError(t, b.Undo())
		require.True(t, b.Equal(state1))
		require.NoError(t, b.Undo())
		require.True(t, b.Equal(state0))
	})

	t.Run("empty history", func(t *testing.T) {
		b := New(3)
		require.ErrorIs(t, b.Undo(), ErrNoHistory)
	})

	t.Run("set is not undoable", func(t *testing.T) {
		b := New(3)
		b.Set(1, 1, 5, Red)
		require.ErrorIs(t, b.Undo(), ErrNoHistory)
	})
}

func TestClear(t *testing.T) {
	b := New(3)
	require.NoError(t, b.AddSpot(Red, 1, 1))

	b.Clear(4)

	require.Equal(t, 4, b.Size())
	require.Equal(t, 0, b.NumPieces())
	require.Equal(t, 0, b.NumMoves())
	require.ErrorIs(t, b.Undo(), ErrNoHistory, "clear discards the undo history")
}

func TestCopy(t *testing.T) {
	src := New(3)
	require.NoError(t, src.AddSpot(Red, 1, 1))
	require.NoError(t, src.AddSpot(Blue, 3, 3))

	dst := New(3)
	dst.Copy(src)

	require.True(t, dst.Equal(src))
	require.Equal(t, 0, dst.NumMoves())
	require.ErrorIs(t, dst.Undo(), ErrNoHistory, "copy starts with a clear history")

	require.Panics(t, func() { New(2).Copy(src) }, "copy between different sizes is a contract violation")
}

func TestNewFromIsIndependent(t *testing.T) {
	b := New(3)
	require.NoError(t, b.AddSpot(Red, 1, 1))

	work := NewFrom(b)
	require.True(t, work.Equal(b))
	require.Equal(t, 0, work.NumMoves())

	require.NoError(t, work.AddSpot(Blue, 2, 2))
	require.Equal(t, Square{}, b.Get(2, 2), "mutating the copy must not touch the original")
	require.NoError(t, work.Undo())
	require.ErrorIs(t, b.Undo(), ErrNoHistory, "the copy's history is its own")
}

func TestEqual(t *testing.T) {
	a := New(3)
	b := New(3)
	require.True(t, a.Equal(b))

	a.Set(1, 1, 1, Red)
	require.False(t, a.Equal(b))

	b.Set(1, 1, 1, Red)
	require.True(t, a.Equal(b))

	require.False(t, a.Equal(New(2)), "boards of different sizes are never equal")
}

func TestDump(t *testing.T) {
	b := New(2)
	b.Set(1, 1, 1, Red)
	b.Set(1, 2, 2, Blue)

	want := "===\n" +
		"    1r 2b\n" +
		"    0- 0-\n" +
		"==="
	require.Equal(t, want, b.String())
}

func TestDisplayString(t *testing.T) {
	b := New(2)
	b.Set(1, 1, 1, Red)

	want := " 1 1r 0-\n" +
		" 2 0- 0-\n" +
		"    1  2"
	require.Equal(t, want, b.DisplayString())
}

func TestNotifier(t *testing.T) {
	b := New(3)
	calls := 0
	b.SetNotifier(func(*Board) { calls++ })
	require.Equal(t, 1, calls, "installing a notifier announces once")

	require.NoError(t, b.AddSpot(Red, 1, 1))
	require.Equal(t, 2, calls)

	b.Set(2, 2, 1, Blue)
	require.Equal(t, 3, calls)

	require.NoError(t, b.Undo())
	require.Equal(t, 4, calls)

	b.Clear(3)
	require.Equal(t, 5, calls)

	work := NewFrom(b)
	require.NoError(t, work.AddSpot(Red, 1, 1))
	require.Equal(t, 5, calls, "a working copy has no notifier")
}

func TestReadonlyView(t *testing.T) {
	b := New(2)
	b.Set(1, 1, 1, Red)
	view := b.Readonly()

	require.Equal(t, 2, view.Size())
	require.Equal(t, Square{Side: Red, Spots: 1}, view.Get(1, 1))
	require.Equal(t, b.String(), view.String())

	_, ok := view.(*Board)
	require.False(t, ok, "the view must not expose the mutable board")
}

// TestRandomPlayoutInvariants plays random games and checks, after every
// move, the two global invariants: no square above its threshold, and
// exactly one net spot added per move.
func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(61))

	for gameNum := 0; gameNum < 20; gameNum++ {
		b := New(4)
		for move := 0; move < 200; move++ {
			if _, won := b.Winner(); won {
				break
			}
			side := b.WhoseMove()

			var legal []Move
			for r := 1; r <= b.Size(); r++ {
				for c := 1; c <= b.Size(); c++ {
					if b.IsLegal(side, r, c) {
						legal = append(legal, Move{Row: r, Col: c})
					}
				}
			}
			require.NotEmpty(t, legal, "a live position always has a legal move")

			m := legal[rng.Intn(len(legal))]
			before := b.NumPieces()
			require.NoError(t, b.AddSpot(side, m.Row, m.Col))
			require.Equal(t, before+1, b.NumPieces(),
				"each move adds exactly one spot net of redistribution")

			for r := 1; r <= b.Size(); r++ {
				for c := 1; c <= b.Size(); c++ {
					require.LessOrEqual(t, b.Get(r, c).Spots, b.Neighbors(r, c),
						"overflow fixed point violated at %d %d", r, c)
				}
			}
		}
	}
}

// TestRandomPlayoutUndoAll unwinds a whole random game move by move and
// expects the empty starting board back.
func TestRandomPlayoutUndoAll(t *testing.T) {
	rng := rand.New(rand.NewSource(62))
	b := New(3)
	empty := NewFrom(b)

	played := 0
	for played < 50 {
		if _, won := b.Winner(); won {
			break
		}
		side := b.WhoseMove()
		var legal []Move
		for r := 1; r <= b.Size(); r++ {
			for c := 1; c <= b.Size(); c++ {
				if b.IsLegal(side, r, c) {
					legal = append(legal, Move{Row: r, Col: c})
				}
			}
		}
		m := legal[rng.Intn(len(legal))]
		require.NoError(t, b.AddSpot(side, m.Row, m.Col))
		played++
	}

	for i := 0; i < played; i++ {
		require.NoError(t, b.Undo())
	}
	require.True(t, b.Equal(empty), "undoing every move must restore the empty board")
	require.Equal(t, 0, b.NumMoves())
	require.ErrorIs(t, b.Undo(), ErrNoHistory)
}
