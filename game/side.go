package game

import "fmt"

// Side identifies the owner of a square: one of the two players, or Empty
// for an unoccupied square. Red is the designated first mover.
type Side int

const (
	Empty Side = iota
	Red
	Blue
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "empty"
	}
}

// Opposite returns the opposing player, or Empty for Empty.
func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return Empty
	}
}

// Playable reports whether s may add a spot to a square currently held by
// holder: a player may play on empty squares and on its own squares, never
// on the opponent's.
func (s Side) Playable(holder Side) bool {
	return holder == Empty || holder == s
}

// ParseSide converts a player name ("red" or "blue") to a Side.
func ParseSide(name string) (Side, error) {
	switch name {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	default:
		return Empty, fmt.Errorf("unknown side %q", name)
	}
}
