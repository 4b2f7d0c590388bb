// Package layout places nodes on the canvas and measures the connectors between them.
package layout

import (
	"github.com/ivlev/canvasdeck/internal/canvas"
)

// Anchor is a node's fixed position in content space, expressed as edge offsets
// relative to the canvas plus an optional pixel delta.
type Anchor struct {
	Left, Top, Right, Bottom Length
	Offset                   canvas.Point
}

// Resolve returns the content-space point for a canvas of the given size.
// On each axis the near edge wins, then the far edge; with neither set the axis is centered.
func (a Anchor) Resolve(extent canvas.Size) canvas.Point {
	return canvas.Point{
		X: resolveAxis(a.Left, a.Right, extent.W) + a.Offset.X,
		Y: resolveAxis(a.Top, a.Bottom, extent.H) + a.Offset.Y,
	}
}

func resolveAxis(near, far Length, extent float64) float64 {
	switch {
	case near.Set:
		return near.Resolve(extent)
	case far.Set:
		return extent - far.Resolve(extent)
	default:
		return extent / 2
	}
}

// Node is a positioned element declared by a slide
type Node struct {
	ID        string
	Anchor    Anchor
	Footprint canvas.Size
	// ScaleWithCamera links the node's own size to the camera scale; by default
	// positions zoom and sizes don't.
	ScaleWithCamera bool
}

// Place returns the node's screen rect inside container under transform t
func Place(container canvas.Rect, t canvas.Transform, n Node) canvas.Rect {
	anchor := n.Anchor.Resolve(canvas.Size{W: container.W, H: container.H})
	center := container.Origin().Add(t.Apply(anchor))

	size := n.Footprint
	if n.ScaleWithCamera {
		size = canvas.Size{W: size.W * t.Scale, H: size.H * t.Scale}
	}
	return canvas.RectAround(center, size)
}
