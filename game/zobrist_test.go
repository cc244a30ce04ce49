package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZobrist(t *testing.T) {
	t.Run("tables are deterministic per board size", func(t *testing.T) {
		a := NewZobrist(9)
		b := NewZobrist(9)

		require.Equal(t, a.Stone(40, Black), b.Stone(40, Black),
			"Hashes must be stable across runs so recorded games stay comparable")
		require.Equal(t, a.Side(), b.Side())
	})

	t.Run("keys differ by position and color", func(t *testing.T) {
		z := NewZobrist(9)

		require.NotEqual(t, z.Stone(0, Black), z.Stone(0, White))
		require.NotEqual(t, z.Stone(0, Black), z.Stone(1, Black))
		require.NotEqual(t, z.Stone(0, Black), z.Side())
	})

	t.Run("xor places and removes a stone", func(t *testing.T) {
		z := NewZobrist(9)

		hash := uint64(0)
		hash ^= z.Stone(40, Black)
		require.NotZero(t, hash)
		hash ^= z.Stone(40, Black)
		require.Zero(t, hash)
	})

	t.Run("panics on an out-of-range position", func(t *testing.T) {
		z := NewZobrist(9)

		require.Panics(t, func() {
			z.Stone(81, Black)
		})
	})
}

func TestStoneOpponent(t *testing.T) {
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, Black, White.Opponent())
	require.Equal(t, Empty, Empty.Opponent())
}
