package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalMove is returned by AddSpot when the requested move
	// violates the legality rules (square held by the opponent, square
	// out of bounds, or game already won).
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoHistory is returned by Undo when there is no move to undo.
	ErrNoHistory = errors.New("no history to undo")
)

// Move is one spot addition at a 1-based (row, column) position.
type Move struct {
	Row int
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("%d %d", m.Row, m.Col)
}

// Notifier is called after every state-changing operation on a Board.
// The board's own logic never depends on it.
type Notifier func(*Board)

// delta records one square's contents prior to an internal write, so a
// move (including its whole cascade) can be replayed in reverse on undo.
type delta struct {
	sq    int
	prior Square
}

// Board holds the state of a jump61 game: an N x N grid of squares,
// indexed either by 1-based (row, column) or by square number 0..N*N-1 in
// row-major order. Each externally applied move pushes one frame of
// square deltas onto the undo history; Undo pops and reverses a frame.
//
// Side-to-move is derived from the total spot count rather than stored:
// every move adds exactly one spot (cascades only redistribute), so
// parity alternates strictly, and an even total means Red is to move.
type Board struct {
	size     int
	squares  []Square
	numMoves int

	history   [][]delta
	frame     []delta
	recording bool

	// Cascade worklist, reused across moves to cut down on allocations.
	queue []int

	notifier Notifier
}

// New returns an empty N x N board. N must be at least 1.
func New(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("game: board size %d out of range", size))
	}
	return &Board{
		size:    size,
		squares: make([]Square, size*size),
	}
}

// NewFrom returns a working copy of b: same contents, but empty undo
// history, zero move counter, and no notifier. Searchers explore on such
// a copy so the original game's history and observers are undisturbed.
func NewFrom(b *Board) *Board {
	work := New(b.size)
	copy(work.squares, b.squares)
	return work
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int {
	return b.size
}

// NumMoves returns the number of moves applied and not undone since the
// board was last cleared or copied into.
func (b *Board) NumMoves() int {
	return b.numMoves
}

// Exists reports whether (r, c) denotes a valid square.
func (b *Board) Exists(r, c int) bool {
	return 1 <= r && r <= b.size && 1 <= c && c <= b.size
}

// SqNum returns the square number of row R, column C.
func (b *Board) SqNum(r, c int) int {
	return (c - 1) + (r-1)*b.size
}

// Row returns the row number of square #N.
func (b *Board) Row(n int) int {
	return n/b.size + 1
}

// Col returns the column number of square #N.
func (b *Board) Col(n int) int {
	return n%b.size + 1
}

// Get returns the contents of the square at row R, column C.
func (b *Board) Get(r, c int) Square {
	return b.squares[b.SqNum(r, c)]
}

// GetSq returns the contents of square #N.
func (b *Board) GetSq(n int) Square {
	return b.squares[n]
}

// NumPieces returns the total number of spots on the board.
func (b *Board) NumPieces() int {
	total := 0
	for _, sq := range b.squares {
		total += sq.Spots
	}
	return total
}

// NumOfSide returns the number of squares held by side.
func (b *Board) NumOfSide(side Side) int {
	count := 0
	for _, sq := range b.squares {
		if sq.Side == side {
			count++
		}
	}
	return count
}

// WhoseMove returns the side that is next to move. Red moves first on an
// empty board and the side alternates with every spot added.
func (b *Board) WhoseMove() Side {
	if b.NumPieces()%2 == 0 {
		return Red
	}
	return Blue
}

// Neighbors returns the number of orthogonal neighbors of the square at
// row R, column C: 2 for corners, 3 for edges, 4 for interior squares.
// This is also the square's overflow threshold.
func (b *Board) Neighbors(r, c int) int {
	n := 0
	if r > 1 {
		n++
	}
	if c > 1 {
		n++
	}
	if r < b.size {
		n++
	}
	if c < b.size {
		n++
	}
	return n
}

// NeighborsSq returns the number of neighbors of square #N.
func (b *Board) NeighborsSq(n int) int {
	return b.Neighbors(b.Row(n), b.Col(n))
}

// neighborSquares appends the square numbers adjacent to #N to dst.
func (b *Board) neighborSquares(n int, dst []int) []int {
	r, c := b.Row(n), b.Col(n)
	if r > 1 {
		dst = append(dst, n-b.size)
	}
	if c > 1 {
		dst = append(dst, n-1)
	}
	if c < b.size {
		dst = append(dst, n+1)
	}
	if r < b.size {
		dst = append(dst, n+b.size)
	}
	return dst
}

// Winner returns the side holding every square, if any. A side wins iff
// no square is empty and all squares share its color.
func (b *Board) Winner() (Side, bool) {
	first := b.squares[0].Side
	if first == Empty {
		return Empty, false
	}
	for _, sq := range b.squares[1:] {
		if sq.Side != first {
			return Empty, false
		}
	}
	return first, true
}

// IsLegal reports whether side may currently add a spot at row R, column
// C: the square must exist, the game must not be won, and the square must
// be empty or already held by side.
func (b *Board) IsLegal(side Side, r, c int) bool {
	if !b.Exists(r, c) {
		return false
	}
	if _, won := b.Winner(); won {
		return false
	}
	return side.Playable(b.Get(r, c).Side)
}

// IsLegalSq reports whether side may currently add a spot at square #N.
func (b *Board) IsLegalSq(side Side, n int) bool {
	return b.IsLegal(side, b.Row(n), b.Col(n))
}

// AddSpot adds one spot of side at row R, column C and cascades any
// resulting overflows to a fixed point. It is the only mutation that is
// recorded in the undo history. Returns an error wrapping ErrIllegalMove
// if the move violates the legality rules.
func (b *Board) AddSpot(side Side, r, c int) error {
	if !b.Exists(r, c) {
		return fmt.Errorf("add spot %d %d: square out of range: %w", r, c, ErrIllegalMove)
	}
	if winner, won := b.Winner(); won {
		return fmt.Errorf("add spot %d %d: game already won by %s: %w", r, c, winner, ErrIllegalMove)
	}
	n := b.SqNum(r, c)
	if holder := b.squares[n].Side; !side.Playable(holder) {
		return fmt.Errorf("add spot %d %d: square held by %s: %w", r, c, holder, ErrIllegalMove)
	}

	b.beginFrame()
	b.set(n, SquareOf(side, b.squares[n].Spots+1))
	b.jump(n)
	b.endFrame()
	b.numMoves++
	b.announce()
	return nil
}

// AddSpotSq adds one spot of side at square #N.
func (b *Board) AddSpotSq(side Side, n int) error {
	return b.AddSpot(side, b.Row(n), b.Col(n))
}

// jump cascades overflows starting from square #N until every square is
// at or below its threshold. A square overflows when its spot count
// exceeds its neighbor count: it keeps spots minus threshold and sends
// one spot of its side to each neighbor, converting them. Overflowed
// neighbors are enqueued for their own check; a dequeued square that no
// longer exceeds its threshold does nothing. A won board freezes: no
// further cascading once one side holds every square.
func (b *Board) jump(n int) {
	queue := append(b.queue[:0], n)
	for head := 0; head < len(queue); head++ {
		if _, won := b.Winner(); won {
			break
		}
		s := queue[head]
		threshold := b.NeighborsSq(s)
		sq := b.squares[s]
		if sq.Spots <= threshold {
			continue
		}
		b.set(s, SquareOf(sq.Side, sq.Spots-threshold))
		start := len(queue)
		queue = b.neighborSquares(s, queue)
		for _, nb := range queue[start:] {
			b.set(nb, SquareOf(sq.Side, b.squares[nb].Spots+1))
		}
		// A square seeded well above its threshold (via Set) may still
		// be over-full after one overflow.
		queue = append(queue, s)
	}
	b.queue = queue[:0]
}

// Set puts NUM spots of side on the square at row R, column C, or empties
// it if NUM is 0. This is the administrative mutator: it bypasses
// legality, the undo history, and the move counter. Used for scripted
// setup and tests.
func (b *Board) Set(r, c, num int, side Side) {
	b.squares[b.SqNum(r, c)] = SquareOf(side, num)
	b.announce()
}

// Clear reinitializes the board to an empty N x N grid, discarding the
// undo history and resetting the move counter.
func (b *Board) Clear(size int) {
	if size < 1 {
		panic(fmt.Sprintf("game: board size %d out of range", size))
	}
	b.size = size
	b.squares = make([]Square, size*size)
	b.history = nil
	b.frame = nil
	b.recording = false
	b.numMoves = 0
	b.announce()
}

// Copy replaces b's contents with those of other, clearing b's undo
// history and move counter. The boards must be the same size.
func (b *Board) Copy(other *Board) {
	if b.size != other.size {
		panic(fmt.Sprintf("game: copy between boards of size %d and %d", b.size, other.size))
	}
	copy(b.squares, other.squares)
	b.history = nil
	b.frame = nil
	b.recording = false
	b.numMoves = 0
	b.announce()
}

// Undo reverses the most recent AddSpot, restoring every square the move
// (and its cascade) touched and decrementing the move counter. Returns
// ErrNoHistory if no move remains to undo.
func (b *Board) Undo() error {
	if len(b.history) == 0 {
		return ErrNoHistory
	}
	frame := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	for i := len(frame) - 1; i >= 0; i-- {
		b.squares[frame[i].sq] = frame[i].prior
	}
	b.numMoves--
	b.announce()
	return nil
}

// Equal reports whether b and other have identical contents, square by
// square. History, counters, and notifiers are not compared.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, sq := range b.squares {
		if sq != other.squares[i] {
			return false
		}
	}
	return true
}

// SetNotifier installs notify as the board's change observer and invokes
// it once. A nil notifier disables notification.
func (b *Board) SetNotifier(notify Notifier) {
	b.notifier = notify
	b.announce()
}

func (b *Board) announce() {
	if b.notifier != nil {
		b.notifier(b)
	}
}

// beginFrame starts recording square deltas for one move.
func (b *Board) beginFrame() {
	b.frame = nil
	b.recording = true
}

// endFrame pushes the recorded deltas as one undo history entry.
func (b *Board) endFrame() {
	b.history = append(b.history, b.frame)
	b.frame = nil
	b.recording = false
}

// set is the single internal write path. While a move is being recorded,
// it logs the square's prior contents for undo.
func (b *Board) set(n int, sq Square) {
	if b.recording {
		b.frame = append(b.frame, delta{sq: n, prior: b.squares[n]})
	}
	b.squares[n] = sq
}

// String returns the dumped representation: a "===" line, one line per
// row prefixed by three spaces with each square rendered as
// " <spots><letter>", and a closing "===" line. The letter is the first
// character of the holding side's name, or '-' for an empty square.
func (b *Board) String() string {
	var out strings.Builder
	out.WriteString("===\n")
	for r := 1; r <= b.size; r++ {
		out.WriteString("   ")
		for c := 1; c <= b.size; c++ {
			sq := b.Get(r, c)
			if sq.Side == Empty {
				fmt.Fprintf(&out, " %d-", sq.Spots)
			} else {
				fmt.Fprintf(&out, " %d%c", sq.Spots, sq.Side.String()[0])
			}
		}
		out.WriteByte('\n')
	}
	out.WriteString("===")
	return out.String()
}

// DisplayString returns a human-oriented rendering of the board: the
// dump's rows prefixed with row numbers, followed by a column-number
// header line.
func (b *Board) DisplayString() string {
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	var out strings.Builder
	for i := 1; i+1 < len(lines); i++ {
		fmt.Fprintf(&out, "%2d %s\n", i, strings.TrimSpace(lines[i]))
	}
	out.WriteString("  ")
	for c := 1; c <= b.size; c++ {
		fmt.Fprintf(&out, "%3d", c)
	}
	return out.String()
}
