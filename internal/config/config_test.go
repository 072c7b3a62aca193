package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/doudizhu/internal/game"
	"github.com/palemoky/doudizhu/internal/game/bidding"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
game:
  mode: random-landlord
  no_bid_policy: random
  human_seat: 2
  seed: 42
  ai_delay_ms: 250
  max_redeals: 3

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1
  key_prefix: "test:"

log:
  enabled: false
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Verify loaded values
	assert.Equal(t, "random-landlord", cfg.Game.Mode)
	assert.Equal(t, 2, cfg.Game.HumanSeat)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.AIDelay())
	assert.Equal(t, 3, cfg.Game.MaxRedeals)

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "test:", cfg.Redis.KeyPrefix)
	assert.False(t, cfg.Log.Enabled)

	opts, err := cfg.Game.Options()
	require.NoError(t, err)
	assert.Equal(t, game.ModeRandomLandlord, opts.Mode)
	assert.Equal(t, bidding.PolicyRandomLandlord, opts.Policy)
	assert.Equal(t, 2, opts.HumanSeat)
	assert.Equal(t, uint64(42), opts.Seed)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "game:\n  human_seat: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "standard", cfg.Game.Mode)
	assert.Equal(t, "redeal", cfg.Game.NoBidPolicy)
	assert.Equal(t, 1, cfg.Game.HumanSeat)
	assert.Equal(t, 800, cfg.Game.AIDelayMs)
	assert.Equal(t, 10, cfg.Game.MaxRedeals)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "ddz:", cfg.Redis.KeyPrefix)
	assert.True(t, cfg.Log.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown mode", "game:\n  mode: poker\n"},
		{"unknown policy", "game:\n  no_bid_policy: coin-flip\n"},
		{"seat out of range", "game:\n  human_seat: 3\n"},
		{"negative delay", "game:\n  ai_delay_ms: -1\n"},
		{"malformed yaml", "game: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800*time.Millisecond, cfg.Game.AIDelay())

	opts, err := cfg.Game.Options()
	require.NoError(t, err)
	assert.Equal(t, game.ModeStandard, opts.Mode)
	assert.Equal(t, bidding.PolicyRedeal, opts.Policy)
}
