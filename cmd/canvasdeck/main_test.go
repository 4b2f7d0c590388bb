package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/slide"
)

const (
	lesson1 = "../../internal/deck/testdata/lesson1.yaml"
	tour    = "../../internal/script/testdata/tour.yaml"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", t.TempDir(), "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", lesson1)
	require.NoError(t, err)
	assert.Contains(t, out, "[+] 2 slides OK")
}

func TestValidateNormalize(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "lesson3.yaml")
	_, err := run(t, "validate", "../../internal/deck/testdata/lesson3.toml", "--normalize", dst)
	require.NoError(t, err)

	d, err := deck.ReadDeck(dst)
	require.NoError(t, err)
	assert.NoError(t, d.Validate())
}

func TestValidateReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "slides:\n  - id: s\n    nodes: [{id: a}]\n    connectors: [{from: a, to: ghost}]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	out, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "[-]")
	assert.Contains(t, out, "ghost")
}

func TestInspectJSON(t *testing.T) {
	out, err := run(t, "inspect", lesson1, "slide1", "--json", "--width", "1000", "--height", "800", "--script", tour)
	require.NoError(t, err)

	var f slide.Frame
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Equal(t, "slide1", f.SlideID)
	assert.True(t, f.Branches["hospital"])
	assert.InDelta(t, 1.1, f.Transform.Scale, 1e-9)
}

func TestInspectTable(t *testing.T) {
	out, err := run(t, "inspect", lesson1, "slide1")
	require.NoError(t, err)
	assert.Contains(t, out, "NODE")
	assert.Contains(t, out, "hospital->brain")

	_, err = run(t, "inspect", lesson1, "missing")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "render", lesson1, "--output", dir, "--width", "320", "--height", "240", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "[+] Rendered 2 slides")

	assert.FileExists(t, filepath.Join(dir, "01_slide1.png"))
	assert.FileExists(t, filepath.Join(dir, "02_slide2.png"))
}

func TestPresetAndBadFlags(t *testing.T) {
	_, err := run(t, "inspect", lesson1, "slide1", "--preset", "3:2")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = run(t, "inspect", lesson1, "slide1", "--recompute", "sometimes")
	assert.Error(t, err)

	out, err := run(t, "inspect", lesson1, "slide1", "--preset", "9:16", "--json")
	require.NoError(t, err)
	var f slide.Frame
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Equal(t, 720.0, f.Viewport.W)
	assert.Equal(t, 1280.0, f.Viewport.H)
}

func TestRunName(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "my_deck_2026-03-04_05-06-07", runName("decks/my deck.yaml", at))
}
