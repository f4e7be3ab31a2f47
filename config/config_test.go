package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termcore/event"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, event.DefaultTickRate, cfg.TickRate)
	assert.Equal(t, event.DefaultCapacity, cfg.ChannelCapacity)
	assert.False(t, cfg.Log.Enabled)

	opts, err := cfg.AppOptions()
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
tick_rate: 20ms
frame_interval: 0s
channel_capacity: 64
quit_key: ctrl_c
drain: all
overflow: drop_oldest
mouse: true
log:
  enabled: true
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.TickRate)
	assert.Zero(t, cfg.FrameInterval)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout, "absent keys keep defaults")
	assert.Equal(t, 64, cfg.ChannelCapacity)
	assert.Equal(t, "ctrl_c", cfg.QuitKey)
	assert.Equal(t, "all", cfg.Drain)
	assert.Equal(t, "drop_oldest", cfg.Overflow)
	assert.True(t, cfg.Mouse)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs", cfg.Log.Dir)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "tick_rat: 5ms\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.QuitKey = "escape"
	cfg.TickRate = 7 * time.Millisecond

	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick_rate: 7ms")

	loaded, err := Load(writeFile(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv([]string{
		"HOME=/root",
		"TERMCORE_TICK_RATE=10ms",
		"TERMCORE_CHANNEL_CAPACITY=8",
		"TERMCORE_QUIT_KEY=escape",
		"TERMCORE_MOUSE=true",
		"TERMCORE_LOG=1",
		"TERMCORE_LOG_LEVEL=warn",
	})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, cfg.TickRate)
	assert.Equal(t, 8, cfg.ChannelCapacity)
	assert.Equal(t, "escape", cfg.QuitKey)
	assert.True(t, cfg.Mouse)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}

func TestApplyEnvMalformed(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv([]string{
		"TERMCORE_TICK_RATE=fast",
		"TERMCORE_CHANNEL_CAPACITY=lots",
		"TERMCORE_MOUSE=maybe",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TERMCORE_TICK_RATE")
	assert.Contains(t, err.Error(), "TERMCORE_CHANNEL_CAPACITY")
	assert.Contains(t, err.Error(), "TERMCORE_MOUSE")
	assert.Equal(t, event.DefaultTickRate, cfg.TickRate, "failed overrides leave fields untouched")
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := Config{
		TickRate:        0,
		FrameInterval:   -time.Second,
		ShutdownTimeout: 0,
		ChannelCapacity: 0,
		QuitKey:         "hyper+q",
		Drain:           "some",
		Overflow:        "block",
	}
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"tick_rate", "frame_interval", "shutdown_timeout", "channel_capacity", "quit_key", "drain", "overflow", "log.level"} {
		assert.Contains(t, err.Error(), field)
	}

	_, err = cfg.AppOptions()
	assert.Error(t, err)
}
