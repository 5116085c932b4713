package probe

import (
	"fmt"

	"github.com/cachelat/cachelat/internal/options"
	"github.com/cachelat/cachelat/pattern"
)

// Default measurement parameters.
const (
	DefaultReadsCount       = 1_000_000
	DefaultWarmupReadsCount = 5_000
	DefaultBatchesCount     = 5
)

// Config holds the measurement parameters of a Prober.
type Config struct {
	readsCount       uint32
	warmupReadsCount uint32
	batchesCount     uint32
	patternSeed      int64
	engineSeed       int64
	detector         Detector
}

func defaultConfig() *Config {
	return &Config{
		readsCount:       DefaultReadsCount,
		warmupReadsCount: DefaultWarmupReadsCount,
		batchesCount:     DefaultBatchesCount,
		patternSeed:      pattern.DefaultSeed,
		engineSeed:       pattern.DefaultEngineSeed,
		detector:         NopDetector{},
	}
}

// Option is a functional option for configuring a Prober.
type Option = options.Option[*Config]

// WithReadsCount sets the number of timed chained reads per batch.
func WithReadsCount(n uint32) Option {
	return options.New(func(c *Config) error {
		if n == 0 {
			return fmt.Errorf("reads count must be positive")
		}
		c.readsCount = n

		return nil
	})
}

// WithWarmupReadsCount sets the number of untimed warmup reads per batch.
// Zero disables warmup.
func WithWarmupReadsCount(n uint32) Option {
	return options.NoError(func(c *Config) {
		c.warmupReadsCount = n
	})
}

// WithBatchesCount sets the number of independent batches averaged into one
// timing sample. Each batch regenerates the shuffled pattern.
func WithBatchesCount(n uint32) Option {
	return options.New(func(c *Config) error {
		if n == 0 {
			return fmt.Errorf("batches count must be positive")
		}
		c.batchesCount = n

		return nil
	})
}

// WithPatternSeed sets the seed for one-shot pattern fills.
func WithPatternSeed(seed int64) Option {
	return options.NoError(func(c *Config) {
		c.patternSeed = seed
	})
}

// WithEngineSeed sets the seed of the shuffle engine shared across batches.
// Runs with the same seed and parameters chase identical layouts.
func WithEngineSeed(seed int64) Option {
	return options.NoError(func(c *Config) {
		c.engineSeed = seed
	})
}

// WithJumpDetector sets the latency discontinuity detector applied during
// sweeps. The default is NopDetector, which never flags.
func WithJumpDetector(d Detector) Option {
	return options.New(func(c *Config) error {
		if d == nil {
			return fmt.Errorf("jump detector must not be nil")
		}
		c.detector = d

		return nil
	})
}
