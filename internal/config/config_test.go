package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(New(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.ViewportWidth)
	assert.Equal(t, 720, cfg.ViewportHeight)
	assert.Equal(t, 0.1, cfg.ZoomStep)
	assert.Equal(t, "commit", cfg.Recompute)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 150, cfg.DPI)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./snapshots", cfg.OutputDir)
	assert.Equal(t, 1280.0, cfg.Viewport().W)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := `
viewportWidth: 1000
viewportHeight: 800
recompute: settle
logLevel: debug
qr: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "canvasdeck.yaml"), []byte(data), 0644))

	cfg, err := Load(New(dir))
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.ViewportWidth)
	assert.Equal(t, 800, cfg.ViewportHeight)
	assert.Equal(t, "settle", cfg.Recompute)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.QR)
	assert.Equal(t, 0.1, cfg.ZoomStep)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CANVASDECK_LISTEN", "127.0.0.1:9000")
	t.Setenv("CANVASDECK_WORKERS", "3")

	cfg, err := Load(New(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	data := "viewportWidth: 0\nrecompute: sometimes\nzoomStep: -1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "canvasdeck.yaml"), []byte(data), 0644))

	_, err := Load(New(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewport must be positive")
	assert.Contains(t, err.Error(), "recompute must be commit or settle")
	assert.Contains(t, err.Error(), "zoomStep must be positive and finite")
}

func TestLoad_NonFiniteZoomStep(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "canvasdeck.yaml"), []byte("zoomStep: .inf\n"), 0644))

	_, err := Load(New(dir))
	assert.ErrorContains(t, err, "zoomStep must be positive and finite")

	for _, step := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		cfg, err := Load(New(t.TempDir()))
		require.NoError(t, err)
		cfg.ZoomStep = step
		assert.Error(t, cfg.Validate(), "zoomStep %v", step)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "canvasdeck.yaml"), []byte("viewportWidth: [1,"), 0644))

	_, err := Load(New(dir))
	assert.ErrorContains(t, err, "error reading config file")
}
