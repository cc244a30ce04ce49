package game

// Stone is the color of a stone, or the state of an intersection.
type Stone int8

const (
	Empty Stone = iota
	Black
	White
	OffBoard
)

// Opponent returns the other player's color. Empty and OffBoard map to
// themselves.
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return s
	}
}

func (s Stone) String() string {
	switch s {
	case Empty:
		return "empty"
	case Black:
		return "black"
	case White:
		return "white"
	case OffBoard:
		return "offboard"
	default:
		return "unknown"
	}
}
