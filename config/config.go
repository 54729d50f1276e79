package config

import (
	"fmt"
	"os"
	"time"

	"homeworlds/meta"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the settings of a game run, read from the environment.
type Config struct {
	LogLevel    string        `env:"HOMEWORLDS_LOG_LEVEL" envDefault:"info"`
	HistoryFile string        `env:"HOMEWORLDS_HISTORY_FILE" envDefault:"last_game.log"`
	MaxRetries  int           `env:"HOMEWORLDS_MAX_RETRIES" envDefault:"10"`
	MaxTurns    int           `env:"HOMEWORLDS_MAX_TURNS" envDefault:"1000"`
	AtomicTurns bool          `env:"HOMEWORLDS_ATOMIC_TURNS" envDefault:"false"`
	TurnTimeout time.Duration `env:"HOMEWORLDS_TURN_TIMEOUT" envDefault:"0s"`
	Seed        uint64        `env:"HOMEWORLDS_SEED" envDefault:"0"`
}

// NoHistory as HistoryFile turns the history dump off.
const NoHistory = "-"

// Default returns the configuration used when the environment sets nothing.
func Default() Config {
	return Config{
		LogLevel:    "info",
		HistoryFile: "last_game.log",
		MaxRetries:  meta.MAX_RETRIES,
		MaxTurns:    meta.MAX_TURNS,
	}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) HistoryEnabled() bool {
	return c.HistoryFile != NoHistory && c.HistoryFile != ""
}

func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("max turns must not be negative, got %d", c.MaxTurns)
	}
	if c.TurnTimeout < 0 {
		return fmt.Errorf("turn timeout must not be negative, got %s", c.TurnTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel for zerolog.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
