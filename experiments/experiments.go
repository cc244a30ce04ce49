package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/k2311060/Maple/engine"
	"github.com/k2311060/Maple/experiments/metrics"
	"github.com/k2311060/Maple/game"
	"github.com/k2311060/Maple/searcher"
)

// SelfPlayConfig drives a self-play data generation run.
type SelfPlayConfig struct {
	Games       int
	BoardSize   int
	PoolSize    int
	Goroutines  int
	Simulations int
	Seed        uint64
}

// RunSelfPlayExperiment plays complete games between two identical searchers
// on a synthetic position and stores the visit-count policy targets of every
// real move under baseDir.
func RunSelfPlayExperiment(baseDir string, cfg SelfPlayConfig) error {
	writer, err := metrics.NewWriter(baseDir)
	if err != nil {
		return err
	}

	log.Info().Int("games", cfg.Games).Msg("starting self-play experiment...")

	var targets []metrics.TargetRecord
	for i := 0; i < cfg.Games; i++ {
		start := time.Now()
		reports, err := runSelfPlayGame(cfg, i)
		if err != nil {
			return err
		}
		for _, report := range reports {
			total := int32(0)
			for _, child := range report.Result.Children {
				total += child.Visits
			}
			if total == 0 {
				continue
			}
			// Children keep the policy order, so rows come out deterministic.
			for _, child := range report.Result.Children {
				targets = append(targets, metrics.TargetRecord{
					Game:    i + 1,
					MoveNum: report.MoveNum,
					Color:   report.Color,
					Pos:     child.Move,
					Visits:  child.Visits,
					Target:  float64(child.Visits) / float64(total),
				})
			}
		}
		log.Info().
			Int("game", i+1).
			Int("moves", len(reports)).
			Dur("duration", time.Since(start)).
			Msg("completed game")
	}

	log.Info().Msg("completed self-play experiment")

	return writer.WriteTargetRecords(targets)
}

func runSelfPlayGame(cfg SelfPlayConfig, gameNum int) ([]engine.MoveReport, error) {
	const branching = 16
	gameLength := cfg.BoardSize * cfg.BoardSize / 2

	newPlayer := func(seed uint64) engine.Player {
		pool := searcher.NewPool(cfg.PoolSize, game.MaxActions(cfg.BoardSize))
		return engine.NewAgent(searcher.NewMCTS(pool, searcher.UniformEvaluator{},
			searcher.WithGoroutines(cfg.Goroutines),
			searcher.WithSimulations(cfg.Simulations),
			searcher.WithSeed(seed),
		))
	}

	state := newSyntheticState(cfg.BoardSize, branching, gameLength)
	record := game.NewRecord(game.MaxRecords(cfg.BoardSize))
	black := newPlayer(cfg.Seed + uint64(gameNum)*2)
	white := newPlayer(cfg.Seed + uint64(gameNum)*2 + 1)

	return engine.NewLocal(state, record, black, white).Run()
}
