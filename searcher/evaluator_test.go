package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEvaluation(t *testing.T) {
	live := newMockState([]int{3, 5, 7}, 4)
	policy := []PolicyEntry{{Action: 3, Prior: 0.6}, {Action: 5, Prior: 0.4}}

	t.Run("accepts a well-formed evaluation", func(t *testing.T) {
		require.NoError(t, validateEvaluation(live, policy, 0.5))
		require.NoError(t, validateEvaluation(live, policy, 0.0))
		require.NoError(t, validateEvaluation(live, policy, 1.0))
	})

	t.Run("rejects values outside the unit interval", func(t *testing.T) {
		for _, value := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1), math.Inf(-1)} {
			err := validateEvaluation(live, policy, value)
			require.ErrorIs(t, err, ErrBadEvaluation, "value %v", value)
		}
	})

	t.Run("rejects an empty policy on a live position", func(t *testing.T) {
		err := validateEvaluation(live, nil, 0.5)

		require.ErrorIs(t, err, ErrBadEvaluation)
		require.NoError(t, validateEvaluation(newMockState([]int{3}, 0), nil, 0.5),
			"A terminal position legitimately has no policy")
	})

	t.Run("rejects non-finite and negative priors", func(t *testing.T) {
		for _, prior := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.2} {
			bad := []PolicyEntry{{Action: 3, Prior: prior}}
			err := validateEvaluation(live, bad, 0.5)
			require.ErrorIs(t, err, ErrBadEvaluation,
				"prior %v would poison every selection it touches", prior)
		}
	})
}
