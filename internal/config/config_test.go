package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data/cards.yaml", cfg.Cards)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 0, cfg.HumanPlayer)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TCGX_DEV_MODE", "true")
	t.Setenv("TCGX_CARDS", "/tmp/cards.yaml")
	t.Setenv("TCGX_SCENARIO", "/tmp/board.yaml")
	t.Setenv("TCGX_PORT", "9000")
	t.Setenv("TCGX_HUMAN_PLAYER", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "/tmp/cards.yaml", cfg.Cards)
	assert.Equal(t, "/tmp/board.yaml", cfg.Scenario)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 1, cfg.HumanPlayer)

	logger, err := cfg.Diagnostics()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("TCGX_HUMAN_PLAYER", "2")
	_, err := Load()
	assert.ErrorContains(t, err, "TCGX_HUMAN_PLAYER")

	t.Setenv("TCGX_HUMAN_PLAYER", "0")
	t.Setenv("TCGX_PORT", "eighty")
	_, err = Load()
	assert.ErrorContains(t, err, "parse env")
}

func TestDiagnosticsBadLevel(t *testing.T) {
	_, err := Config{LogLevel: "loud"}.Diagnostics()
	assert.ErrorContains(t, err, "loud")
}
