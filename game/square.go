package game

// Square is the immutable contents of one board cell: the side holding it
// and the number of spots on it. Squares are replaced wholesale on every
// mutation, never updated in place.
//
// Invariant: Spots == 0 iff Side == Empty.
type Square struct {
	Side  Side
	Spots int
}

// SquareOf builds a Square, normalizing zero spots to an empty square so
// the Side/Spots invariant holds no matter what the caller passes.
func SquareOf(side Side, spots int) Square {
	if spots <= 0 {
		return Square{Side: Empty, Spots: 0}
	}
	return Square{Side: side, Spots: spots}
}
