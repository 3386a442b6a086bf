package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdcore/internal/core"
	"rdcore/internal/document"
)

// run executes rd with a small arena and no user settings file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("width: 16\nheight: 12\nlog_level: warn\n"), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--config", settings}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewAndInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spots.xml")
	out, err := run(t, "new", path, "--neighborhood", "edge", "--data-type", "double", "--description", "two\nlines")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	out, err = run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rule:         Gray-Scott (inbuilt)")
	assert.Contains(t, out, "arena:        16x12")
	assert.Contains(t, out, "neighborhood: edge")
	assert.Contains(t, out, "data type:    double")
	assert.Contains(t, out, "memory:       3072 bytes")
	assert.Contains(t, out, "description:  two\n              lines")
	assert.Contains(t, out, "  F = 0.035")
	assert.NotContains(t, out, "update:")
}

func TestInfoReportsNewerFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newer.xml")
	_, err := run(t, "new", path)
	require.NoError(t, err)

	root, err := document.ReadFile(path)
	require.NoError(t, err)
	rd, err := core.FindRD(root)
	require.NoError(t, err)
	rd.SetAttr("format_version", "99")
	require.NoError(t, document.WriteFile(path, root))

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "update:       recommended: written by a format newer than 6")
	assert.Contains(t, out, "rule:         Gray-Scott (inbuilt)")
}

func TestBadLogSettings(t *testing.T) {
	_, err := run(t, "--log-format", "xml", "engines")
	assert.ErrorIs(t, err, core.ErrUnrecognizedValue)

	_, err = run(t, "--log-level", "loud", "engines")
	assert.ErrorIs(t, err, core.ErrUnrecognizedValue)
}

func TestEnvironmentOverridesSettingsFile(t *testing.T) {
	t.Setenv("RD_WIDTH", "20")
	out, err := run(t, "run", "-n", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Gray-Scott: 0 timesteps")

	path := filepath.Join(t.TempDir(), "p.xml")
	_, err = run(t, "new", path)
	require.NoError(t, err)
	out, err = run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "arena:        20x12")
}

func TestParamsEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.xml")
	_, err := run(t, "new", path)
	require.NoError(t, err)

	edited := filepath.Join(dir, "edited.yaml")
	out, err := run(t, "params", path, "--set", "F=0.05", "--add", "noise=0.01", "--delete", "timestep", "-o", edited)
	require.NoError(t, err)
	assert.NotContains(t, out, "timestep")
	assert.Contains(t, out, "  F = 0.05\n")
	assert.Contains(t, out, "  noise = 0.01\n")

	out, err = run(t, "params", edited)
	require.NoError(t, err)
	assert.Contains(t, out, "  noise = 0.01\n")

	_, err = run(t, "params", path, "--set", "missing=1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = run(t, "params", path, "--set", "F")
	assert.ErrorIs(t, err, core.ErrInvalidFormat)
	_, err = run(t, "params", path, "--add", "F=1")
	assert.ErrorIs(t, err, core.ErrInvalidOperation)
}

func TestRunExportsPNG(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "b.png")
	saved := filepath.Join(dir, "after.xml")
	out, err := run(t, "run", "-n", "25", "--chunk", "10", "--png", img, "--save", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Gray-Scott: 25 timesteps")

	f, err := os.Open(img)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, decoded.Bounds().Dx())
	assert.Equal(t, 12, decoded.Bounds().Dy())

	_, err = os.Stat(saved)
	assert.NoError(t, err)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "p.xml")
	dst := filepath.Join(dir, "p.yaml")
	_, err := run(t, "new", src)
	require.NoError(t, err)

	out, err := run(t, "convert", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "to yaml")

	root, err := document.ReadFile(dst)
	require.NoError(t, err)
	rd, err := core.FindRD(root)
	require.NoError(t, err)
	cfg, _, err := core.DecodeConfiguration(rd, core.DefaultConfiguration())
	require.NoError(t, err)
	assert.Equal(t, "Gray-Scott", cfg.RuleName)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<nothing/>"), 0o644))
	_, err = run(t, "convert", bad, dst)
	assert.ErrorIs(t, err, core.ErrMalformedDocument)
}

func TestSweep(t *testing.T) {
	out, err := run(t, "sweep", "--axis", "F=0.03,0.04", "--axis", "k=0.06", "-n", "3", "--workers", "2", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Sweeping 2 parameter sets (2 workers, 3 steps)")
	assert.Contains(t, out, " 1) stddev=")
	assert.NotContains(t, out, " 2) ")

	_, err = run(t, "sweep")
	assert.ErrorIs(t, err, core.ErrInvalidOperation)
}

func TestEngines(t *testing.T) {
	out, err := run(t, "engines")
	require.NoError(t, err)
	assert.Equal(t, "grayscott\n", out)
}

func TestUnknownEngine(t *testing.T) {
	_, err := run(t, "--engine", "nope", "run", "-n", "1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
