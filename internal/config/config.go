// Package config holds the process-wide settings of the ndarray module.
//
// Settings are plain values: library entry points take them explicitly
// (cpu.WithParallel, ndarray.Format). The process-scoped context (Init, Current,
// Reset) exists for the few places that have no caller to thread a value
// through, such as Array.String.
package config

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/born-ml/ndarray/internal/parallel"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "NDARRAY_"

// PrintOptions controls how arrays are rendered as text.
type PrintOptions struct {
	Precision int `env:"PRECISION" envDefault:"8"`    // digits after the decimal point for floats
	Threshold int `env:"THRESHOLD" envDefault:"1000"` // total size above which output is summarized
	EdgeItems int `env:"EDGE_ITEMS" envDefault:"3"`   // items kept at each edge when summarizing
	LineWidth int `env:"LINE_WIDTH" envDefault:"75"`  // characters per line before wrapping
}

// ParallelOptions controls goroutine fan-out in elementwise kernels.
type ParallelOptions struct {
	Enabled      bool `env:"ENABLED" envDefault:"false"`
	Workers      int  `env:"WORKERS" envDefault:"0"` // 0 means runtime.NumCPU()
	MinChunkSize int  `env:"MIN_CHUNK_SIZE" envDefault:"4096"`
}

// Config is the complete module configuration.
type Config struct {
	Print    PrintOptions    `envPrefix:"PRINT_"`
	Parallel ParallelOptions `envPrefix:"PARALLEL_"`
	Seed     uint64          `env:"SEED" envDefault:"0"`
}

// Default returns the built-in configuration (the envDefault values).
func Default() Config {
	return Config{
		Print: PrintOptions{
			Precision: 8,
			Threshold: 1000,
			EdgeItems: 3,
			LineWidth: 75,
		},
		Parallel: ParallelOptions{
			MinChunkSize: 4096,
		},
	}
}

// Load reads the configuration from NDARRAY_* environment variables.
func Load() (Config, error) {
	return LoadEnv(nil)
}

// LoadEnv reads the configuration from the given environment map
// (nil means the process environment).
func LoadEnv(environment map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environment}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Print.Precision < 0:
		return fmt.Errorf("config: print precision must be >= 0, got %d", c.Print.Precision)
	case c.Print.Threshold < 0:
		return fmt.Errorf("config: print threshold must be >= 0, got %d", c.Print.Threshold)
	case c.Print.EdgeItems < 1:
		return fmt.Errorf("config: print edge items must be >= 1, got %d", c.Print.EdgeItems)
	case c.Parallel.Workers < 0:
		return fmt.Errorf("config: parallel workers must be >= 0, got %d", c.Parallel.Workers)
	case c.Parallel.MinChunkSize < 1:
		return fmt.Errorf("config: parallel min chunk size must be >= 1, got %d", c.Parallel.MinChunkSize)
	}
	return nil
}

// ParallelConfig converts the options into a parallel.Config.
func (p ParallelOptions) ParallelConfig() parallel.Config {
	workers := p.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return parallel.Config{
		Enabled:      p.Enabled && workers > 1,
		NumWorkers:   workers,
		MinChunkSize: p.MinChunkSize,
	}
}

var (
	mu      sync.RWMutex
	current = Default()
)

// Init installs cfg as the process-wide configuration.
func Init(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	current = cfg
	return nil
}

// Current returns the process-wide configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Reset restores the built-in defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = Default()
}
