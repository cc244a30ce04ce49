package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/k2311060/Maple/game"
	"github.com/k2311060/Maple/searcher"
)

// Search holds the searcher tunables loaded from a YAML file. Unset fields
// keep their defaults, so a config file only needs to name what it changes.
type Search struct {
	BoardSize   int     `yaml:"board_size"`
	PoolSize    int     `yaml:"pool_size"`
	Goroutines  int     `yaml:"goroutines"`
	Simulations int     `yaml:"simulations"`
	DurationMS  int     `yaml:"duration_ms"`
	NoiseAlpha  float64 `yaml:"noise_alpha"`
	NoiseWeight float64 `yaml:"noise_weight"`
	Seed        uint64  `yaml:"seed"`
}

func Default() Search {
	return Search{
		BoardSize:   game.DefaultBoardSize,
		PoolSize:    1 << 14,
		Goroutines:  8,
		Simulations: 800,
		NoiseAlpha:  searcher.NoiseAlpha,
		NoiseWeight: searcher.NoiseWeight,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Search, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s Search) validate() error {
	if s.BoardSize <= 0 {
		return fmt.Errorf("board_size must be positive, got %d", s.BoardSize)
	}
	if s.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be positive, got %d", s.PoolSize)
	}
	if s.Simulations <= 0 && s.DurationMS <= 0 {
		return fmt.Errorf("need simulations or duration_ms")
	}
	return nil
}

// Options translates the config into searcher options.
func (s Search) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithGoroutines(s.Goroutines),
		searcher.WithNoise(s.NoiseAlpha, s.NoiseWeight),
	}
	if s.Simulations > 0 {
		options = append(options, searcher.WithSimulations(s.Simulations))
	}
	if s.DurationMS > 0 {
		options = append(options, searcher.WithDuration(time.Duration(s.DurationMS)*time.Millisecond))
	}
	if s.Seed != 0 {
		options = append(options, searcher.WithSeed(s.Seed))
	}
	return options
}
