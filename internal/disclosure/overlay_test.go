package disclosure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayGroupKeepsOneOpen(t *testing.T) {
	o, err := NewOverlays([]Overlay{
		{ID: "cocina", Trigger: "house-1", Group: "houses"},
		{ID: "escuela", Trigger: "house-2", Group: "houses"},
		{ID: "note", Trigger: "house-3"},
	})
	require.NoError(t, err)

	o.Toggle("cocina")
	o.Toggle("note")
	o.Toggle("escuela")
	assert.Equal(t, []string{"escuela", "note"}, o.OpenIDs())

	o.Toggle("escuela")
	assert.Equal(t, []string{"note"}, o.OpenIDs())

	o.Open("ghost")
	assert.False(t, o.IsOpen("ghost"))
}

func TestOverlayIndependentOfBranches(t *testing.T) {
	tree := newTestTree(t)
	o, err := NewOverlays([]Overlay{{ID: "brain-words", Trigger: "brain"}})
	require.NoError(t, err)

	tree.Expand("hospital")
	o.Toggle("brain-words")
	assert.True(t, o.IsOpen("brain-words"))
	assert.False(t, tree.Expanded("brain"), "overlay toggle must not expand branches")

	tree.Expand("school")
	assert.True(t, o.IsOpen("brain-words"), "branch changes alone don't close overlays")
}

func TestPruneClosesUnmountedTriggers(t *testing.T) {
	o, err := NewOverlays([]Overlay{
		{ID: "a", Trigger: "n1"},
		{ID: "b", Trigger: "n2"},
	})
	require.NoError(t, err)
	o.Open("a")
	o.Open("b")

	closed := o.Prune(func(node string) bool { return node == "n2" })
	assert.Equal(t, []string{"a"}, closed)
	assert.Equal(t, []string{"b"}, o.OpenIDs())
}

func TestDismissOutside(t *testing.T) {
	o, err := NewOverlays([]Overlay{
		{ID: "tip", Trigger: "n1", DismissOnOutside: true},
		{ID: "panel", Trigger: "n2"},
	})
	require.NoError(t, err)
	o.Open("tip")
	o.Open("panel")

	closed := o.DismissOutside(func(Overlay) bool { return true })
	assert.Empty(t, closed)

	closed = o.DismissOutside(func(Overlay) bool { return false })
	assert.Equal(t, []string{"tip"}, closed)
	assert.True(t, o.IsOpen("panel"))

	o.Reset()
	assert.Empty(t, o.OpenIDs())
}

func TestNewOverlaysValidation(t *testing.T) {
	_, err := NewOverlays([]Overlay{{ID: "x"}, {ID: "x"}, {}})
	assert.Error(t, err)
}
