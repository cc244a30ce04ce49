package searcher

import (
	"errors"
	"fmt"
	"math"

	"github.com/k2311060/Maple/game"
)

// ErrBadEvaluation reports malformed output from the policy/value network. A
// bad evaluation aborts the owning simulation; it must never leak into the
// tree statistics.
var ErrBadEvaluation = errors.New("invalid leaf evaluation")

// Evaluator is the policy/value network boundary. Evaluate returns a prior
// over the legal moves of the side to move and the position's win rate in
// [0, 1] for that side. A terminal position returns an empty policy and its
// final value. Implementations may batch internally; the call is the only
// point where a simulation blocks.
type Evaluator interface {
	Evaluate(state game.State) (policy []PolicyEntry, value float64, err error)
}

// UniformEvaluator spreads the prior evenly over legal moves and calls every
// position even. Used for plumbing tests and throughput experiments where a
// real network would only get in the way.
type UniformEvaluator struct{}

func (UniformEvaluator) Evaluate(state game.State) ([]PolicyEntry, float64, error) {
	if state.Over() {
		return nil, 0.5, nil
	}
	moves := state.LegalActions()
	policy := make([]PolicyEntry, len(moves))
	prior := 1.0 / float64(len(moves))
	for i, move := range moves {
		policy[i] = PolicyEntry{Action: move, Prior: prior}
	}
	return policy, 0.5, nil
}

// validateEvaluation rejects network output that would poison the statistics.
func validateEvaluation(state game.State, policy []PolicyEntry, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > 1 {
		return fmt.Errorf("%w: value %v outside [0, 1]", ErrBadEvaluation, value)
	}
	if len(policy) == 0 && !state.Over() {
		return fmt.Errorf("%w: empty policy for a live position", ErrBadEvaluation)
	}
	for _, entry := range policy {
		if math.IsNaN(entry.Prior) || math.IsInf(entry.Prior, 0) || entry.Prior < 0 {
			return fmt.Errorf("%w: prior %v for move %d", ErrBadEvaluation, entry.Prior, entry.Action)
		}
	}
	return nil
}
