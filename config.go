package reseed

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/opd-ai/go-reseed/chacha"
	"github.com/opd-ai/go-reseed/source"
)

// DefaultThreshold is the reseed threshold used when RESEED_THRESHOLD_BYTES
// is not set.
const DefaultThreshold = 64 * 1024

// Config holds the environment-driven settings used by NewDefault.
type Config struct {
	// ThresholdBytes is the output volume between periodic reseeds.
	// 0 disables periodic reseeding.
	ThresholdBytes uint64 `env:"RESEED_THRESHOLD_BYTES" envDefault:"65536"`

	// LogLevel is the minimum level of reseed diagnostics.
	LogLevel slog.Level `env:"RESEED_LOG_LEVEL" envDefault:"WARN"`

	// Debug lowers LogLevel to debug, so every periodic reseed is logged.
	Debug bool `env:"RESEED_DEBUG"`
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("reseed: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ThresholdBytes > math.MaxInt64 {
		return errors.New("reseed: threshold exceeds the largest supported countdown (use 0 to disable periodic reseeding)")
	}
	return nil
}

// NewLogger builds a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level := c.LogLevel
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewDefault returns a ChaCha20 generator seeded and reseeded from the
// operating system, configured from the environment. Diagnostics go to
// stderr unless opts supply a logger.
func NewDefault(opts ...Option) (*Rng, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	core, err := chacha.FromSource(source.OS{})
	if err != nil {
		return nil, fmt.Errorf("reseed: initial seed: %w", err)
	}

	opts = append([]Option{WithLogger(cfg.NewLogger(os.Stderr))}, opts...)
	return New(core, cfg.ThresholdBytes, source.OS{}, opts...), nil
}
