package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/multierr"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("samples: 100\nleft_hz: 220\nmetrics_addr: \":9090\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)

	want := DefaultConfig()
	want.Samples = 100
	want.LeftHz = 220
	want.MetricsAddr = ":9090"
	assert.Equal(t, want, cfg)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	assert.NoError(t, os.WriteFile(path, []byte("samples: [1"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Samples = 0
	cfg.SampleRate = 0
	cfg.Window = 0
	cfg.Capacity = -2
	cfg.Limit = -1
	err := cfg.Validate()
	assert.IsError(t, err, ErrInvalidConfig)
	assert.Equal(t, 5, len(multierr.Errors(err)))

	cfg = DefaultConfig()
	cfg.Samples = -1
	cfg.Capacity = -1
	assert.NoError(t, cfg.Validate())
}
