package game

// State is the board boundary the searcher descends through. Implementations
// own legality checking and hashing; the searcher only ever walks forward from
// a position, so Play returns a new state and never mutates the receiver.
type State interface {
	// Player is the side to move.
	Player() Stone
	// LegalActions lists the candidate moves for the side to move,
	// including Pass where legal.
	LegalActions() []int
	// Play applies a move for the side to move and returns the resulting
	// state.
	Play(pos int) State
	// Hash is the Zobrist-style hash of the position.
	Hash() uint64
	// Over reports whether the game has ended.
	Over() bool
}
