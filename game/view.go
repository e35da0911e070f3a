package game

// View is a read-only view of a board, for display code and other
// observers that must not mutate game state.
type View interface {
	Size() int
	Get(r, c int) Square
	NumPieces() int
	WhoseMove() Side
	Winner() (Side, bool)
	String() string
	DisplayString() string
}

type readonlyBoard struct {
	b *Board
}

// Readonly returns a read-only view backed by b. The view tracks b's
// state but exposes no mutators.
func (b *Board) Readonly() View {
	return readonlyBoard{b: b}
}

func (v readonlyBoard) Size() int             { return v.b.Size() }
func (v readonlyBoard) Get(r, c int) Square   { return v.b.Get(r, c) }
func (v readonlyBoard) NumPieces() int        { return v.b.NumPieces() }
func (v readonlyBoard) WhoseMove() Side       { return v.b.WhoseMove() }
func (v readonlyBoard) Winner() (Side, bool)  { return v.b.Winner() }
func (v readonlyBoard) String() string        { return v.b.String() }
func (v readonlyBoard) DisplayString() string { return v.b.DisplayString() }
