package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/k2311060/Maple/game"
	"github.com/k2311060/Maple/searcher"
)

// toyState is a fixed-branching game that ends after maxDepth plies, hashed
// through the real Zobrist table.
type toyState struct {
	zobrist  *game.ZobristTable
	player   game.Stone
	moves    []int
	depth    int
	maxDepth int
	hash     uint64
}

func newToyState(maxDepth int) *toyState {
	return &toyState{
		zobrist:  game.NewZobrist(5),
		player:   game.Black,
		moves:    []int{0, 1, 2},
		maxDepth: maxDepth,
	}
}

func (s *toyState) Player() game.Stone { return s.player }

func (s *toyState) LegalActions() []int { return s.moves }

func (s *toyState) Play(pos int) game.State {
	next := *s
	next.player = s.player.Opponent()
	next.depth = s.depth + 1
	next.hash = s.hash ^ s.zobrist.Stone(pos, s.player) ^ s.zobrist.Side()
	return &next
}

func (s *toyState) Hash() uint64 { return s.hash }

func (s *toyState) Over() bool { return s.depth >= s.maxDepth }

func newTestPlayer(t *testing.T) Player {
	t.Helper()
	pool := searcher.NewPool(256, 4)
	return NewAgent(searcher.NewMCTS(pool, searcher.UniformEvaluator{},
		searcher.WithSimulations(20),
		searcher.WithNoise(0, 0),
		searcher.WithSeed(1)))
}

type brokenPlayer struct{}

func (brokenPlayer) FindMove(state game.State) (*searcher.Result, error) {
	return nil, errors.New("agent offline")
}

func TestLocalRun(t *testing.T) {
	t.Run("plays the game to the end and records every move", func(t *testing.T) {
		const gameLength = 6
		record := game.NewRecord(game.MaxRecords(5))
		local := NewLocal(newToyState(gameLength), record, newTestPlayer(t), newTestPlayer(t))

		reports, err := local.Run()

		require.NoError(t, err)
		require.Len(t, reports, gameLength)
		require.Equal(t, gameLength, local.Moves())

		for i, report := range reports {
			require.Equal(t, i, report.MoveNum)
			color, pos, hash := record.Get(i)
			require.Equal(t, report.Color, color)
			require.Equal(t, report.Result.BestMove, pos)
			require.NotZero(t, hash)
			require.True(t, record.HasSameHash(hash))
		}

		require.Equal(t, game.Black, reports[0].Color)
		require.Equal(t, game.White, reports[1].Color, "Colors must alternate")
	})

	t.Run("stops at the record's capacity", func(t *testing.T) {
		record := game.NewRecord(2)
		local := NewLocal(newToyState(10), record, newTestPlayer(t), newTestPlayer(t))

		reports, err := local.Run()

		require.NoError(t, err)
		require.Len(t, reports, 2, "A full record ends the game rather than overflowing it")
	})

	t.Run("surfaces a player failure with the moves so far", func(t *testing.T) {
		record := game.NewRecord(game.MaxRecords(5))
		local := NewLocal(newToyState(6), record, brokenPlayer{}, brokenPlayer{})

		reports, err := local.Run()

		require.Error(t, err)
		require.Empty(t, reports)
	})
}

func TestNewLocal(t *testing.T) {
	t.Run("panics without a state or players", func(t *testing.T) {
		record := game.NewRecord(4)
		player := brokenPlayer{}

		require.Panics(t, func() { NewLocal(nil, record, player, player) })
		require.Panics(t, func() { NewLocal(newToyState(2), record, nil, player) })
	})
}
