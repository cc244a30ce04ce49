package engine

import (
	"github.com/k2311060/Maple/game"
	"github.com/k2311060/Maple/searcher"
)

// Player picks a move for the side to move and exposes the search statistics
// behind the pick.
type Player interface {
	FindMove(state game.State) (*searcher.Result, error)
}

// MoveReport is one real move of a finished game together with the search
// that produced it.
type MoveReport struct {
	MoveNum int
	Color   game.Stone
	Result  *searcher.Result
}

// Agent adapts a searcher to the match driver.
type Agent struct {
	mcts *searcher.MCTS
}

func NewAgent(mcts *searcher.MCTS) *Agent {
	return &Agent{mcts: mcts}
}

func (a *Agent) FindMove(state game.State) (*searcher.Result, error) {
	return a.mcts.Search(state)
}
