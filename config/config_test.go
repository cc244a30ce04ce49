package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults with file values", func(t *testing.T) {
		path := writeConfig(t, "board_size: 19\nsimulations: 1600\ngoroutines: 16\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 19, cfg.BoardSize)
		require.Equal(t, 1600, cfg.Simulations)
		require.Equal(t, 16, cfg.Goroutines)
		require.Equal(t, Default().PoolSize, cfg.PoolSize, "Unset fields keep their defaults")
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "simulations: [not a number\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("rejects a config without a search budget", func(t *testing.T) {
		path := writeConfig(t, "simulations: 0\nduration_ms: 0\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("rejects a non-positive board size", func(t *testing.T) {
		path := writeConfig(t, "board_size: -9\n")

		_, err := Load(path)

		require.Error(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Run("default config yields usable searcher options", func(t *testing.T) {
		options := Default().Options()

		require.NotEmpty(t, options)
	})
}
