package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termcore/config"
)

func runConfigCmd(t *testing.T, args ...string) config.Config {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"config"}, args...))
	require.NoError(t, root.ExecuteContext(t.Context()))

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &cfg))
	return cfg
}

func TestConfigCmdDefaults(t *testing.T) {
	cfg := runConfigCmd(t)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigCmdPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 20ms\ndrain: all\nmouse: true\n"), 0o644))

	// env beats file
	t.Setenv("TERMCORE_TICK_RATE", "30ms")

	cfg := runConfigCmd(t, "--config", path, "--mouse=false")
	assert.Equal(t, 30*time.Millisecond, cfg.TickRate)
	assert.Equal(t, "all", cfg.Drain)
	assert.False(t, cfg.Mouse, "flag beats file")

	cfg = runConfigCmd(t, "--config", path, "--tick", "40ms")
	assert.Equal(t, 40*time.Millisecond, cfg.TickRate, "flag beats env")
}

func TestConfigCmdRejectsInvalid(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"config", "--drain", "sometimes"})
	assert.Error(t, root.ExecuteContext(t.Context()))
}

func TestWorkersFlagBounds(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"counters", "--workers", "0"})
	err := root.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--workers")
}
