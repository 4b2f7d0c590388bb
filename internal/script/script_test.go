package script

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/slide"
)

func testSlide(t *testing.T) *slide.Slide {
	t.Helper()
	def := deck.Slide{
		ID:       "slide1",
		Branches: []deck.Branch{{ID: "hospital"}},
		Nodes: []deck.Node{
			{ID: "hospital", Symbol: "🏥", Size: "80px", Position: deck.Position{Top: "30%"}, Clickable: true, Toggles: "hospital"},
			{ID: "brain", Symbol: "🧠", Size: "80px", Position: deck.Position{Top: "50%"}, Branch: "hospital"},
		},
		Connectors: []deck.Connector{{ID: "h-b", From: "hospital", To: "brain"}},
	}
	s, err := slide.New(def, canvas.Rect{W: 1000, H: 800}, slide.Options{})
	require.NoError(t, err)
	return s
}

func TestReadFileAndApply(t *testing.T) {
	f, err := ReadFile(filepath.Join("testdata", "tour.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Scripts, 2)

	s := testSlide(t)
	results, err := Apply(s, f.For("slide1"))
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.True(t, results[4].PreventDefault)

	fr := s.Frame()
	assert.InDelta(t, 1.1, fr.Transform.Scale, 1e-9)
	assert.InDelta(t, 44, fr.Transform.Translation.X, 1e-9)

	c, _ := fr.Connector("h-b")
	require.NotNil(t, c.Segment)
	assert.InDelta(t, 44+500*1.1, c.Segment.Start.X, 1e-9)
}

func TestApplyCommands(t *testing.T) {
	f, err := ReadFile(filepath.Join("testdata", "tour.yaml"))
	require.NoError(t, err)

	s := testSlide(t)
	_, err = Apply(s, f.For("slide2"))
	require.NoError(t, err)

	fr := s.Frame()
	assert.Equal(t, canvas.Rect{W: 640, H: 480}, fr.Viewport)
	assert.True(t, fr.Branches["hospital"])

	_, err = Apply(s, []Step{{Type: StepReset}, {Type: StepResetView}, {Type: StepOverlay, Target: "none"}})
	require.NoError(t, err)
	assert.False(t, s.Frame().Branches["hospital"])
}

func TestApplyRejectsBadSteps(t *testing.T) {
	s := testSlide(t)

	_, err := Apply(s, []Step{{Type: "tap"}})
	assert.ErrorContains(t, err, "step 0")

	_, err = Apply(s, []Step{{Type: "wheel", DeltaY: 1}, {Type: StepResize}})
	assert.ErrorContains(t, err, "step 1")
}

func TestForMissingSlide(t *testing.T) {
	var f *File
	assert.Nil(t, f.For("x"))
	assert.Nil(t, (&File{}).For("x"))
}
