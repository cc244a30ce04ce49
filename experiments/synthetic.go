package experiments

import "github.com/k2311060/Maple/game"

// syntheticState is a fixed-branching stand-in for a real board: every
// position offers the same moves, the game ends after a fixed number of
// plies, and hashing runs through the real Zobrist table. Just enough rules
// to drive the searcher at full speed without a rules engine.
type syntheticState struct {
	zobrist  *game.ZobristTable
	player   game.Stone
	actions  []int
	depth    int
	maxDepth int
	hash     uint64
}

func newSyntheticState(boardSize, branching, maxDepth int) *syntheticState {
	if branching > boardSize*boardSize {
		panic("branching exceeds board area")
	}
	actions := make([]int, branching)
	for i := range actions {
		actions[i] = i
	}
	return &syntheticState{
		zobrist:  game.NewZobrist(boardSize),
		player:   game.Black,
		actions:  actions,
		maxDepth: maxDepth,
	}
}

func (s *syntheticState) Player() game.Stone {
	return s.player
}

func (s *syntheticState) LegalActions() []int {
	return s.actions
}

func (s *syntheticState) Play(pos int) game.State {
	next := *s
	next.player = s.player.Opponent()
	next.depth = s.depth + 1
	next.hash = s.hash ^ s.zobrist.Stone(pos, s.player) ^ s.zobrist.Side()
	return &next
}

func (s *syntheticState) Hash() uint64 {
	return s.hash
}

func (s *syntheticState) Over() bool {
	return s.depth >= s.maxDepth
}
