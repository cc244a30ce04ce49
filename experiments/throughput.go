package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/k2311060/Maple/experiments/metrics"
	"github.com/k2311060/Maple/game"
	"github.com/k2311060/Maple/searcher"
)

// RunThroughputExperiment measures simulation throughput of the parallel
// searcher across goroutine counts on a synthetic position, and stores the
// records under baseDir. Search quality is irrelevant here; only the tree
// update path is exercised.
func RunThroughputExperiment(baseDir string, duration time.Duration) ([]metrics.ThroughputRecord, error) {
	goroutineCounts := []int{1, 2, 4, 8, 16, 32, 64}
	const boardSize = game.DefaultBoardSize
	const branching = 32
	const gameLength = 64

	writer, err := metrics.NewWriter(baseDir)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("starting throughput experiment...")

	records := make([]metrics.ThroughputRecord, 0, len(goroutineCounts))
	for _, goroutines := range goroutineCounts {
		state := newSyntheticState(boardSize, branching, gameLength)
		pool := searcher.NewPool(1<<15, branching+1)
		mcts := searcher.NewMCTS(pool, searcher.UniformEvaluator{},
			searcher.WithGoroutines(goroutines),
			searcher.WithDuration(duration),
			searcher.WithNoise(0, 0),
		)

		result, err := mcts.Search(state)
		if err != nil {
			return nil, err
		}

		m := result.Metrics
		record := metrics.ThroughputRecord{
			Goroutines:  goroutines,
			Duration:    m.Duration,
			Simulations: m.Simulations,
			Failures:    m.Failures,
			PerSecond:   float64(m.Simulations) / m.Duration.Seconds(),
		}
		records = append(records, record)

		log.Info().
			Int("goroutines", goroutines).
			Int64("simulations", m.Simulations).
			Float64("per_second", record.PerSecond).
			Msg("measured configuration")
	}

	log.Info().Msg("completed throughput experiment")

	if err := writer.WriteThroughputRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}
