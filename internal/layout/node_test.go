package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

func TestAnchorResolve(t *testing.T) {
	extent := canvas.Size{W: 1000, H: 800}

	tests := []struct {
		name   string
		anchor Anchor
		want   canvas.Point
	}{
		{"defaults to center", Anchor{}, canvas.Point{X: 500, Y: 400}},
		{"top only", Anchor{Top: Percent(30)}, canvas.Point{X: 500, Y: 240}},
		{"left and top", Anchor{Left: Percent(25), Top: Percent(40)}, canvas.Point{X: 250, Y: 320}},
		{"right and bottom", Anchor{Right: Pixels(100), Bottom: Percent(10)}, canvas.Point{X: 900, Y: 720}},
		{"left wins over right", Anchor{Left: Pixels(10), Right: Pixels(10)}, canvas.Point{X: 10, Y: 400}},
		{"calc", Anchor{Left: MustParseLength("calc(50% - 120px)"), Top: MustParseLength("calc(50% + 120px)")}, canvas.Point{X: 380, Y: 520}},
		{"offset", Anchor{Top: Percent(50), Offset: canvas.Point{X: 0, Y: 170}}, canvas.Point{X: 500, Y: 570}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.anchor.Resolve(extent))
		})
	}
}

func TestPlaceKeepsFootprintUnderZoom(t *testing.T) {
	container := canvas.Rect{X: 100, Y: 50, W: 1000, H: 800}
	n := Node{ID: "a", Anchor: Anchor{Left: Pixels(200), Top: Pixels(100)}, Footprint: canvas.Size{W: 80, H: 80}}

	r := Place(container, canvas.Identity(), n)
	assert.Equal(t, canvas.Rect{X: 260, Y: 110, W: 80, H: 80}, r)

	tr := canvas.Transform{Translation: canvas.Point{X: 10, Y: -20}, Scale: 2}
	r = Place(container, tr, n)
	assert.Equal(t, canvas.Point{X: 100 + 10 + 400, Y: 50 - 20 + 200}, r.Center())
	assert.Equal(t, 80.0, r.W)

	n.ScaleWithCamera = true
	r = Place(container, tr, n)
	assert.Equal(t, 160.0, r.W)
	assert.Equal(t, canvas.Point{X: 510, Y: 230}, r.Center())
}
