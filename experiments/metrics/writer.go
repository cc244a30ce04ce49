package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/k2311060/Maple/game"
)

// ThroughputRecord is one configuration's measured simulation throughput.
type ThroughputRecord struct {
	Goroutines  int
	Duration    time.Duration
	Simulations int64
	Failures    int64
	PerSecond   float64
}

// TargetRecord is one candidate move of one real game position, with its
// visit-count-normalized probability. The rows of a game form the policy
// training targets of a self-play run.
type TargetRecord struct {
	Game    int
	MoveNum int
	Color   game.Stone
	Pos     int
	Visits  int32
	Target  float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory under baseDir.
func NewWriter(baseDir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: dir}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	path := filepath.Join(w.baseDir, "throughput.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create throughput file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"goroutines", "duration", "simulations", "failures", "per_second"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write throughput header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Goroutines),
			record.Duration.String(),
			strconv.FormatInt(record.Simulations, 10),
			strconv.FormatInt(record.Failures, 10),
			strconv.FormatFloat(record.PerSecond, 'f', 1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write throughput row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteTargetRecords(records []TargetRecord) error {
	path := filepath.Join(w.baseDir, "targets.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create targets file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "move_num", "color", "pos", "visits", "target"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write targets header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.MoveNum),
			record.Color.String(),
			strconv.Itoa(record.Pos),
			strconv.Itoa(int(record.Visits)),
			strconv.FormatFloat(record.Target, 'f', 6, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write target row: %w", err)
		}
	}

	return nil
}
