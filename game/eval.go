package game

// Evaluate scores a board position from Red's perspective: positive
// values favor Red, negative favor Blue. winValue is the score of a
// decided position.
type Evaluate func(b *Board, winValue int) int

// EvaluateMaterial is the simple material heuristic: the number of
// squares held by Red minus the number held by Blue, or the full
// winValue (signed) when one side holds the entire board. Search depth,
// not evaluator sophistication, is the main playing-strength lever.
func EvaluateMaterial(b *Board, winValue int) int {
	red := b.NumOfSide(Red)
	blue := b.NumOfSide(Blue)
	total := b.Size() * b.Size()
	switch {
	case red == total:
		return winValue
	case blue == total:
		return -winValue
	default:
		return red - blue
	}
}
