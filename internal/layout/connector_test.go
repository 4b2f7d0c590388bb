package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

func TestComputeSegmentScenario(t *testing.T) {
	container := canvas.Rect{X: 100, Y: 100, W: 800, H: 600}
	a := canvas.RectAround(canvas.Point{X: 150, Y: 150}, canvas.Size{W: 40, H: 40})
	b := canvas.RectAround(canvas.Point{X: 250, Y: 150}, canvas.Size{W: 60, H: 20})

	seg := ComputeSegment(&container, &a, &b)
	require.NotNil(t, seg)
	assert.Equal(t, canvas.Point{X: 50, Y: 50}, seg.Start)
	assert.Equal(t, canvas.Point{X: 150, Y: 50}, seg.End)
	assert.Equal(t, 0.0, seg.Angle)
	assert.Equal(t, 100.0, seg.Length)
}

func TestComputeSegmentAngle(t *testing.T) {
	container := canvas.Rect{W: 100, H: 100}
	a := canvas.Rect{X: 0, Y: 0, W: 2, H: 2}
	b := canvas.Rect{X: 0, Y: 30, W: 2, H: 2}

	seg := ComputeSegment(&container, &a, &b)
	require.NotNil(t, seg)
	assert.InDelta(t, 90.0, seg.Angle, 1e-9)
	assert.Equal(t, 30.0, seg.Length)

	seg = ComputeSegment(&container, &b, &a)
	require.NotNil(t, seg)
	assert.InDelta(t, -90.0, seg.Angle, 1e-9)
}

func TestComputeSegmentNullCases(t *testing.T) {
	container := canvas.Rect{W: 100, H: 100}
	a := canvas.Rect{X: 10, Y: 10, W: 4, H: 4}
	nan := canvas.Rect{X: math.NaN(), Y: 0, W: 4, H: 4}

	assert.Nil(t, ComputeSegment(&container, nil, &a))
	assert.Nil(t, ComputeSegment(&container, &a, nil))
	assert.Nil(t, ComputeSegment(nil, &a, &a))
	assert.Nil(t, ComputeSegment(&container, &a, &a), "zero length")
	assert.Nil(t, ComputeSegment(&container, &a, &nan))
}

func TestConnectUsesRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Begin()
	container := canvas.Rect{W: 500, H: 500}
	link := Link{ID: "l", From: "a", To: "b"}

	reg.Measure("a", canvas.Rect{X: 0, Y: 0, W: 10, H: 10})
	assert.Nil(t, Connect(reg, container, link))

	reg.Measure("b", canvas.Rect{X: 30, Y: 40, W: 10, H: 10})
	seg := Connect(reg, container, link)
	require.NotNil(t, seg)
	assert.Equal(t, 50.0, seg.Length)

	reg.Forget("b")
	assert.Nil(t, Connect(reg, container, link))
}

func TestRegistryPasses(t *testing.T) {
	reg := NewRegistry()
	reg.Begin()
	reg.Measure("b", canvas.Rect{W: 1, H: 1})
	reg.Measure("a", canvas.Rect{W: 1, H: 1})
	assert.Equal(t, []string{"a", "b"}, reg.IDs())
	assert.Equal(t, uint64(1), reg.Generation())

	reg.Begin()
	assert.Nil(t, reg.Lookup("a"))
	assert.Empty(t, reg.IDs())
	assert.Equal(t, uint64(2), reg.Generation())
}
