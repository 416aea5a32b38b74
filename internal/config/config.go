// Package config loads process settings from the environment. Command-line
// flags, where a binary has them, override these values.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

// Config holds the settings shared by the CLI, the MCP server and the web server.
type Config struct {
	DevMode  bool   `env:"TCGX_DEV_MODE"`
	LogLevel string `env:"TCGX_LOG_LEVEL" envDefault:"info"`

	// Cards is the card library file.
	Cards string `env:"TCGX_CARDS" envDefault:"data/cards.yaml"`
	// Scenario is the board loaded when a session starts.
	Scenario string `env:"TCGX_SCENARIO" envDefault:"data/scenarios/standby.yaml"`

	Port int `env:"TCGX_PORT" envDefault:"8080"`
	// HumanPlayer is the seat (0 or 1) a connected client plays.
	HumanPlayer int `env:"TCGX_HUMAN_PLAYER" envDefault:"0"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges env tags cannot express.
func (c Config) Validate() error {
	if c.HumanPlayer != 0 && c.HumanPlayer != 1 {
		return fmt.Errorf("TCGX_HUMAN_PLAYER must be 0 or 1, got %d", c.HumanPlayer)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("TCGX_PORT out of range: %d", c.Port)
	}
	return nil
}

// Diagnostics builds the zap logger for this configuration.
func (c Config) Diagnostics() (*zap.Logger, error) {
	return log.NewDiagnostics(c.DevMode, c.LogLevel)
}
