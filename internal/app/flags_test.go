package app

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("view", pflag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-f", "spots.yaml", "--width", "64", "-c", "0", "--high", "1"}))

	assert.Equal(t, "spots.yaml", cfg.File)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
	assert.Equal(t, 0, cfg.Chemical)
	assert.Equal(t, 1.0, cfg.High)
	assert.Equal(t, map[string]string{"w": "64", "h": "128", "seed": "1"}, cfg.EngineOptions())
}
