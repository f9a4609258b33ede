package story

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration, loaded from the environment.
type Config struct {
	SampleRate   int           `env:"SEANCE_SAMPLE_RATE" envDefault:"44100"`
	TickInterval time.Duration `env:"SEANCE_TICK_INTERVAL" envDefault:"100ms"`
	// Silent swaps the system audio device for an in-memory backend, so
	// the experience can run where no output device exists.
	Silent bool `env:"SEANCE_SILENT" envDefault:"false"`
}

// ParseConfig loads configuration from environment variables.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("sample rate must be positive, got %d", cfg.SampleRate)
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}
