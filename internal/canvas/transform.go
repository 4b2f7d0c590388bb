// Package canvas holds the camera over an unbounded content plane.
package canvas

import (
	"math"

	"golang.org/x/image/math/f64"
)

const (
	// MinScale is the lower bound for the camera scale; there is no upper bound
	MinScale = 0.1
	// ZoomStep is the scale change applied per wheel notch
	ZoomStep = 0.1
)

// Transform is a translate+uniform-scale camera. Content point p is shown at Translation + p*Scale.
type Transform struct {
	Translation Point   `json:"translation"`
	Scale       float64 `json:"scale"`
}

// Identity returns the transform every slide starts with
func Identity() Transform {
	return Transform{Scale: 1}
}

// Pan moves the camera by a screen-space delta
func (t *Transform) Pan(dx, dy float64) {
	t.Translation.X += dx
	t.Translation.Y += dy
}

// ZoomAt changes the scale by delta while keeping the content point under anchor fixed on screen.
// The resulting scale never drops below MinScale.
func (t *Transform) ZoomAt(anchor Point, delta float64) {
	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}
	newScale := math.Max(MinScale, scale+delta)
	ratio := newScale / scale

	*t = Transform{
		Translation: Point{
			X: anchor.X - (anchor.X-t.Translation.X)*ratio,
			Y: anchor.Y - (anchor.Y-t.Translation.Y)*ratio,
		},
		Scale: newScale,
	}
}

// Reset restores the identity transform
func (t *Transform) Reset() {
	*t = Identity()
}

// Apply maps a content-space point to screen space
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.Translation.X + p.X*t.Scale,
		Y: t.Translation.Y + p.Y*t.Scale,
	}
}

// Invert maps a screen-space point back to content space
func (t Transform) Invert(p Point) Point {
	return Point{
		X: (p.X - t.Translation.X) / t.Scale,
		Y: (p.Y - t.Translation.Y) / t.Scale,
	}
}

// Matrix returns the transform as a row-major 2x3 affine matrix
func (t Transform) Matrix() f64.Aff3 {
	return f64.Aff3{
		t.Scale, 0, t.Translation.X,
		0, t.Scale, t.Translation.Y,
	}
}

// WheelDelta converts a wheel deltaY into a signed scale step. Scrolling down zooms out,
// anything else zooms in.
func WheelDelta(deltaY, step float64) float64 {
	if deltaY > 0 {
		return -step
	}
	return step
}
