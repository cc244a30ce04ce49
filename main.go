package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/k2311060/Maple/config"
	"github.com/k2311060/Maple/experiments"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML search config")
	outDir := flag.String("out", "experiments/out", "output directory for experiment records")
	games := flag.Int("games", 2, "number of self-play games")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}

	if _, err := experiments.RunThroughputExperiment(*outDir, 500*time.Millisecond); err != nil {
		log.Fatal().Err(err).Msg("throughput experiment failed")
	}

	err := experiments.RunSelfPlayExperiment(*outDir, experiments.SelfPlayConfig{
		Games:       *games,
		BoardSize:   cfg.BoardSize,
		PoolSize:    cfg.PoolSize,
		Goroutines:  cfg.Goroutines,
		Simulations: cfg.Simulations,
		Seed:        cfg.Seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("self-play experiment failed")
	}
}
