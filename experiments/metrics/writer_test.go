package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/k2311060/Maple/game"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriterThroughput(t *testing.T) {
	t.Run("stores one row per configuration", func(t *testing.T) {
		writer, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		records := []ThroughputRecord{
			{Goroutines: 1, Duration: time.Second, Simulations: 1000, PerSecond: 1000},
			{Goroutines: 8, Duration: time.Second, Simulations: 6000, PerSecond: 6000},
		}
		require.NoError(t, writer.WriteThroughputRecords(records))

		rows := readCSV(t, filepath.Join(writer.BaseDir(), "throughput.csv"))
		require.Len(t, rows, 3, "Header plus one row per record")
		require.Equal(t, []string{"goroutines", "duration", "simulations", "failures", "per_second"}, rows[0])
		require.Equal(t, "8", rows[2][0])
		require.Equal(t, "6000", rows[2][2])
	})
}

func TestWriterTargets(t *testing.T) {
	t.Run("stores one row per candidate move", func(t *testing.T) {
		writer, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		records := []TargetRecord{
			{Game: 1, MoveNum: 0, Color: game.Black, Pos: 40, Visits: 60, Target: 0.6},
			{Game: 1, MoveNum: 0, Color: game.Black, Pos: 41, Visits: 40, Target: 0.4},
		}
		require.NoError(t, writer.WriteTargetRecords(records))

		rows := readCSV(t, filepath.Join(writer.BaseDir(), "targets.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "black", rows[1][2])
		require.Equal(t, "0.600000", rows[1][5])
	})
}
