package layout

import (
	"math"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

// Segment is the on-screen line joining two node centers, relative to the container's top-left
type Segment struct {
	Start  canvas.Point `json:"start"`
	End    canvas.Point `json:"end"`
	Angle  float64      `json:"angle"` // degrees
	Length float64      `json:"length"`
}

// ComputeSegment measures the line between the centers of start and end.
// It returns nil when any rect is unmeasured or the segment would be degenerate.
func ComputeSegment(container, start, end *canvas.Rect) *Segment {
	if container == nil || start == nil || end == nil {
		return nil
	}

	origin := container.Origin()
	a := start.Center().Sub(origin)
	b := end.Center().Sub(origin)

	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil
	}

	seg := &Segment{
		Start:  a,
		End:    b,
		Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
		Length: length,
	}
	if !a.Finite() || !b.Finite() || math.IsNaN(seg.Angle) {
		return nil
	}
	return seg
}

// Link is a connector declaration between two node ids
type Link struct {
	ID   string
	From string
	To   string
}

// Connect computes the segment for a link from the registry's current measurements
func Connect(reg *Registry, container canvas.Rect, l Link) *Segment {
	return ComputeSegment(&container, reg.Lookup(l.From), reg.Lookup(l.To))
}
