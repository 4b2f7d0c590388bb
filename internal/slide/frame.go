package slide

import (
	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/layout"
)

// Frame is everything the presentation layer needs to draw a slide after a commit
type Frame struct {
	SlideID    string           `json:"slideId"`
	Title      string           `json:"title,omitempty"`
	Route      string           `json:"route,omitempty"`
	Background string           `json:"background,omitempty"`
	Viewport   canvas.Rect      `json:"viewport"`
	Transform  canvas.Transform `json:"transform"`
	Cursor     string           `json:"cursor"`
	Dragging   bool             `json:"dragging"`
	// Stale is set while connector geometry lags behind an active drag
	Stale      bool            `json:"stale"`
	Generation uint64          `json:"generation"`
	Nodes      []NodeView      `json:"nodes"`
	Connectors []ConnectorView `json:"connectors"`
	Overlays   []OverlayView   `json:"overlays"`
	Branches   map[string]bool `json:"branches"`
}

// NodeView is a node's rendered state. Rect is nil for unmounted nodes.
type NodeView struct {
	ID        string       `json:"id"`
	Symbol    string       `json:"symbol"`
	Label     string       `json:"label,omitempty"`
	Visible   bool         `json:"visible"`
	Clickable bool         `json:"clickable"`
	Rect      *canvas.Rect `json:"rect,omitempty"`
}

// ConnectorView is a connector's rendered state. Segment is nil when nothing should be drawn.
type ConnectorView struct {
	ID      string          `json:"id"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Mounted bool            `json:"mounted"`
	Segment *layout.Segment `json:"segment,omitempty"`
}

// OverlayView is an overlay's rendered state. Rect is set only while open.
type OverlayView struct {
	ID      string       `json:"id"`
	Kind    string       `json:"kind"`
	Trigger string       `json:"trigger"`
	Open    bool         `json:"open"`
	Rect    *canvas.Rect `json:"rect,omitempty"`
	Items   []deck.Item  `json:"items"`
}

// Node returns the view for a node id
func (f *Frame) Node(id string) (NodeView, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeView{}, false
}

// Connector returns the view for a connector id
func (f *Frame) Connector(id string) (ConnectorView, bool) {
	for _, c := range f.Connectors {
		if c.ID == id {
			return c, true
		}
	}
	return ConnectorView{}, false
}

// Overlay returns the view for an overlay id
func (f *Frame) Overlay(id string) (OverlayView, bool) {
	for _, o := range f.Overlays {
		if o.ID == id {
			return o, true
		}
	}
	return OverlayView{}, false
}
