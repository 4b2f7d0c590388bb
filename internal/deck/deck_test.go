package deck

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/canvasdeck/internal/layout"
)

func TestReadDeckYAML(t *testing.T) {
	d, err := ReadDeck(filepath.Join("testdata", "lesson1.yaml"))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, "1.0", d.Version)
	require.Len(t, d.Slides, 2)

	s, ok := d.FindSlide("slide1")
	require.True(t, ok)
	assert.Len(t, s.Nodes, 5)
	assert.Equal(t, "calc(50% + 120px)", s.Nodes[2].Position.Left)
	assert.Equal(t, "hospital->brain", s.Connectors[0].ConnectorID())

	_, ok = d.FindSlide("nope")
	assert.False(t, ok)
}

func TestReadDeckTOML(t *testing.T) {
	d, err := ReadDeck(filepath.Join("testdata", "lesson3.toml"))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	s := d.Slides[0]
	assert.Equal(t, "30%", s.Nodes[0].Position.Top)
	require.Len(t, s.Overlays, 1)
	assert.Equal(t, KindThinking, s.Overlays[0].Kind)
	assert.True(t, s.Overlays[0].Items[0].CrossedOut)
	assert.True(t, s.Overlays[0].Items[2].Highlighted)
}

func TestWriteReadRoundTrip(t *testing.T) {
	d, err := ReadDeck(filepath.Join("testdata", "lesson3.toml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteDeck(d, path))

	back, err := ReadDeck(path)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestReadDeckErrors(t *testing.T) {
	_, err := ReadDeck(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(bad, []byte("{}"), 0644))
	_, err = ReadDeck(bad)
	assert.ErrorContains(t, err, "unsupported deck format")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("slides: [\n"), 0644))
	_, err = ReadDeck(broken)
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	d := &Deck{Slides: []Slide{{
		ID:       "s",
		Branches: []Branch{
			{ID: "b", Parent: "ghost"},
			{ID: "x", Parent: "y"},
			{ID: "y", Parent: "x"},
			{ID: "r1", Group: "g"},
			{ID: "r2", Parent: "r1", Group: "g"},
		},
		Nodes: []Node{
			{ID: "a", Position: Position{Left: "50 %%"}},
			{ID: "a"},
			{ID: "c", Toggles: "b"},
			{ID: "d", Size: "50%"},
			{ID: "e", RelativeTo: "f"},
			{ID: "f", RelativeTo: "e"},
		},
		Connectors: []Connector{{From: "a", To: "zzz"}},
		Overlays:   []Overlay{{ID: "o", Trigger: "zzz", Kind: "popup"}},
	}}}

	err := d.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`node "a": left`,
		`duplicate node "a"`,
		`not clickable`,
		`node "d" size`,
		`relativeTo chain forms a cycle`,
		`connector "a->zzz": unknown node "zzz"`,
		`unknown trigger node "zzz"`,
		`unknown kind "popup"`,
		`branch "b": unknown parent "ghost"`,
		`branch "x": parent chain forms a cycle`,
		`branch "y": parent chain forms a cycle`,
		`group "g": branches "r1" and "r2" are not siblings`,
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidateEmptyDeck(t *testing.T) {
	assert.ErrorContains(t, (&Deck{}).Validate(), "no slides")
}

func TestParseAnchorAndSize(t *testing.T) {
	a, err := ParseAnchor(Node{Position: Position{Left: "calc(50% - 120px)", Top: "30%"}, Offset: Offset{Y: 4}})
	require.NoError(t, err)
	assert.Equal(t, layout.Length{Percent: 50, Pixels: -120, Set: true}, a.Left)
	assert.Equal(t, layout.Percent(30), a.Top)
	assert.False(t, a.Right.Set)
	assert.Equal(t, 4.0, a.Offset.Y)

	size, err := NodeSize(Node{})
	require.NoError(t, err)
	assert.Equal(t, 64.0, size)

	size, err = NodeSize(Node{Size: "5.5rem"})
	require.NoError(t, err)
	assert.Equal(t, 88.0, size)
}

func TestFindLatestDeck(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.yaml", "b.toml", "c.yml", "notes.txt"}
	for i, f := range files {
		p := filepath.Join(dir, f)
		require.NoError(t, os.WriteFile(p, []byte("version: x"), 0644))
		mod := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}

	latest, err := FindLatestDeck(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "c.yml"), latest)

	_, err = FindLatestDeck(t.TempDir())
	assert.Error(t, err)
}
