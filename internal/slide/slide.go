// Package slide runs one canvas session: camera, input, disclosure state and the
// post-layout pass that measures nodes and lays out connectors.
package slide

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/disclosure"
	"github.com/ivlev/canvasdeck/internal/input"
	"github.com/ivlev/canvasdeck/internal/layout"
)

const (
	overlayWidth   = 200.0
	overlayPadding = 12.0
	overlayGap     = 8.0
	tooltipCell    = 36.0
	wordRow        = 28.0
)

type nodeEntry struct {
	decl deck.Node
	size float64
	// anchor is nil for nodes placed relative to another node
	anchor *layout.Anchor
}

// Slide owns the transform, controller, disclosure state and registry of one slide.
// It is not safe for concurrent use; callers dispatch events from one goroutine.
type Slide struct {
	def  deck.Slide
	opts Options
	log  zerolog.Logger

	viewport   canvas.Rect
	transform  canvas.Transform
	controller *input.Controller
	tree       *disclosure.Tree
	overlays   *disclosure.Overlays
	registry   *layout.Registry

	nodes        []nodeEntry
	nodeIndex    map[string]int
	links        []layout.Link
	overlayDecls map[string]deck.Overlay

	segments     map[string]*layout.Segment
	overlayRects map[string]canvas.Rect
	stale        bool
}

// New builds a session for a slide declaration inside the given viewport
// (the container rect in client coordinates).
func New(def deck.Slide, viewport canvas.Rect, opts Options) (*Slide, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("slide %q: %w", def.ID, err)
	}
	opts = opts.withDefaults()

	branches := make([]disclosure.Branch, 0, len(def.Branches))
	for _, b := range def.Branches {
		branches = append(branches, disclosure.Branch{ID: b.ID, Parent: b.Parent, Group: b.Group, Open: b.Open})
	}
	tree, err := disclosure.NewTree(branches)
	if err != nil {
		return nil, fmt.Errorf("slide %q: %w", def.ID, err)
	}

	overlayDecls := make(map[string]deck.Overlay, len(def.Overlays))
	overlays := make([]disclosure.Overlay, 0, len(def.Overlays))
	for _, o := range def.Overlays {
		overlayDecls[o.ID] = o
		overlays = append(overlays, disclosure.Overlay{ID: o.ID, Trigger: o.Trigger, Group: o.Group, DismissOnOutside: o.DismissOnOutside})
	}
	ov, err := disclosure.NewOverlays(overlays)
	if err != nil {
		return nil, fmt.Errorf("slide %q: %w", def.ID, err)
	}

	s := &Slide{
		def:          def,
		opts:         opts,
		log:          opts.Logger.With().Str("slide", def.ID).Logger(),
		viewport:     viewport,
		transform:    canvas.Identity(),
		tree:         tree,
		overlays:     ov,
		registry:     layout.NewRegistry(),
		nodeIndex:    make(map[string]int, len(def.Nodes)),
		overlayDecls: overlayDecls,
		segments:     make(map[string]*layout.Segment),
		overlayRects: make(map[string]canvas.Rect),
	}
	s.controller = input.NewController(&s.transform, viewport.Origin(), opts.ZoomStep)

	for i, n := range def.Nodes {
		size, _ := deck.NodeSize(n)
		entry := nodeEntry{decl: n, size: size}
		if n.RelativeTo == "" {
			a, _ := deck.ParseAnchor(n)
			entry.anchor = &a
		}
		s.nodes = append(s.nodes, entry)
		s.nodeIndex[n.ID] = i
	}
	for _, c := range def.Connectors {
		s.links = append(s.links, layout.Link{ID: c.ConnectorID(), From: c.From, To: c.To})
	}

	s.commit(true)
	return s, nil
}

// ID returns the slide id
func (s *Slide) ID() string {
	return s.def.ID
}

// Transform returns the current camera
func (s *Slide) Transform() canvas.Transform {
	return s.transform
}

// Dispatch handles one input event and, if anything changed, runs the post-layout pass
func (s *Slide) Dispatch(ev input.Event) input.Result {
	res := s.controller.Handle(ev)
	structural := false

	if res.Press != nil {
		closed := s.overlays.DismissOutside(func(o disclosure.Overlay) bool {
			return s.insideOverlay(o, s.client(*res.Press))
		})
		if len(closed) > 0 {
			s.log.Debug().Strs("overlays", closed).Msg("dismissed overlays")
			structural = true
		}
	}

	if res.Click != nil && s.activate(s.client(*res.Click)) {
		structural = true
	}

	// a wheel zoom settles immediately, even in the middle of a drag
	if res.TransformChanged && ev.Kind == input.Wheel {
		s.commit(true)
	} else if structural || res.TransformChanged || res.DragEnded {
		s.commit(structural)
	}
	return res
}

// Resize moves or resizes the container and relays out the slide
func (s *Slide) Resize(viewport canvas.Rect) {
	s.viewport = viewport
	s.controller.SetOrigin(viewport.Origin())
	s.commit(true)
}

// ResetView restores the identity camera
func (s *Slide) ResetView() {
	s.transform.Reset()
	s.commit(false)
}

// Reset restores the camera and the initial disclosure state
func (s *Slide) Reset() {
	s.transform.Reset()
	s.tree.Reset()
	s.overlays.Reset()
	s.commit(true)
}

// Toggle flips a branch as if its anchor node had been clicked
func (s *Slide) Toggle(branch string) {
	s.tree.Toggle(branch)
	s.commit(true)
}

// ToggleOverlay flips an overlay as if its trigger had been clicked
func (s *Slide) ToggleOverlay(id string) {
	s.overlays.Toggle(id)
	s.commit(true)
}

// activate hit-tests a click in client coordinates and runs the node's toggles.
// The topmost mounted node under the pointer takes the click; open overlays sit above nodes.
func (s *Slide) activate(p canvas.Point) bool {
	for _, r := range s.overlayRects {
		if r.Contains(p) {
			return false
		}
	}

	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := s.nodes[i].decl
		rect := s.registry.Lookup(n.ID)
		if rect == nil || !rect.Contains(p) {
			continue
		}
		if !n.Clickable {
			return false
		}
		if n.Toggles != "" {
			s.tree.Toggle(n.Toggles)
		}
		if n.Overlay != "" {
			s.overlays.Toggle(n.Overlay)
		}
		s.log.Debug().Str("node", n.ID).Strs("expanded", s.tree.ExpandedIDs()).Strs("overlays", s.overlays.OpenIDs()).Msg("node activated")
		return n.Toggles != "" || n.Overlay != ""
	}
	return false
}

func (s *Slide) insideOverlay(o disclosure.Overlay, p canvas.Point) bool {
	if r, ok := s.overlayRects[o.ID]; ok && r.Contains(p) {
		return true
	}
	if r := s.registry.Lookup(o.Trigger); r != nil && r.Contains(p) {
		return true
	}
	return false
}

// client converts a container-relative point to client coordinates
func (s *Slide) client(p canvas.Point) canvas.Point {
	return p.Add(s.viewport.Origin())
}

func (s *Slide) mounted(nodeID string) bool {
	i, ok := s.nodeIndex[nodeID]
	if !ok {
		return false
	}
	return s.tree.Mounted(s.nodes[i].decl.Branch)
}

// commit is the post-layout pass: it runs after state has changed, measures every
// mounted node into the registry and only then lays out overlays and connectors.
func (s *Slide) commit(structural bool) {
	if closed := s.overlays.Prune(s.mounted); len(closed) > 0 {
		s.log.Debug().Strs("overlays", closed).Msg("closed overlays of unmounted nodes")
	}

	s.registry.Begin()
	extent := canvas.Size{W: s.viewport.W, H: s.viewport.H}
	anchors := make(map[string]canvas.Point, len(s.nodes))
	for _, n := range s.nodes {
		if !s.mounted(n.decl.ID) {
			continue
		}
		p := s.anchorOf(n.decl.ID, extent, anchors)
		node := layout.Node{
			ID:              n.decl.ID,
			Anchor:          layout.Anchor{Left: layout.Pixels(p.X), Top: layout.Pixels(p.Y)},
			Footprint:       canvas.Size{W: n.size, H: n.size},
			ScaleWithCamera: n.decl.ScaleWithCamera,
		}
		s.registry.Measure(n.decl.ID, layout.Place(s.viewport, s.transform, node))
	}

	clear(s.overlayRects)
	for _, id := range s.overlays.OpenIDs() {
		o := s.overlayDecls[id]
		if trigger := s.registry.Lookup(o.Trigger); trigger != nil {
			s.overlayRects[id] = overlayRect(o, *trigger)
		}
	}

	if s.opts.Recompute == OnSettle && s.controller.State() == input.Dragging && !structural {
		s.stale = true
		return
	}
	s.stale = false
	clear(s.segments)
	for _, l := range s.links {
		if s.mounted(l.From) && s.mounted(l.To) {
			s.segments[l.ID] = layout.Connect(s.registry, s.viewport, l)
		}
	}
}

// anchorOf resolves a node's content-space anchor, following relativeTo chains
func (s *Slide) anchorOf(id string, extent canvas.Size, memo map[string]canvas.Point) canvas.Point {
	if p, ok := memo[id]; ok {
		return p
	}
	n := s.nodes[s.nodeIndex[id]]
	var p canvas.Point
	if n.anchor != nil {
		p = n.anchor.Resolve(extent)
	} else {
		p = s.anchorOf(n.decl.RelativeTo, extent, memo).Add(canvas.Point{X: n.decl.Offset.X, Y: n.decl.Offset.Y})
	}
	memo[id] = p
	return p
}

// overlayRect places an overlay below its trigger, horizontally centered on it
func overlayRect(o deck.Overlay, trigger canvas.Rect) canvas.Rect {
	w := o.Width
	if w <= 0 {
		w = overlayWidth
	}
	h := o.Height
	if h <= 0 {
		h = overlayHeight(o, w)
	}
	c := trigger.Center()
	return canvas.Rect{X: c.X - w/2, Y: trigger.Y + trigger.H*1.2, W: w, H: h}
}

func overlayHeight(o deck.Overlay, width float64) float64 {
	n := float64(len(o.Items))
	if n == 0 {
		return 2 * overlayPadding
	}
	if o.Kind == deck.KindTooltip || o.Kind == "" {
		perRow := math.Max(1, math.Floor((width-2*overlayPadding+overlayGap)/(tooltipCell+overlayGap)))
		rows := math.Ceil(n / perRow)
		return 2*overlayPadding + rows*tooltipCell + (rows-1)*overlayGap
	}
	return 2*overlayPadding + n*wordRow + (n-1)*overlayGap
}

// Frame snapshots the state produced by the last commit
func (s *Slide) Frame() Frame {
	f := Frame{
		SlideID:    s.def.ID,
		Title:      s.def.Title,
		Route:      s.def.Route,
		Background: s.def.Background,
		Viewport:   s.viewport,
		Transform:  s.transform,
		Cursor:     s.controller.Cursor(),
		Dragging:   s.controller.State() == input.Dragging,
		Stale:      s.stale,
		Generation: s.registry.Generation(),
		Branches:   s.tree.State(),
	}

	for _, n := range s.nodes {
		f.Nodes = append(f.Nodes, NodeView{
			ID:        n.decl.ID,
			Symbol:    n.decl.Symbol,
			Label:     n.decl.Label,
			Visible:   s.mounted(n.decl.ID),
			Clickable: n.decl.Clickable,
			Rect:      s.registry.Lookup(n.decl.ID),
		})
	}

	for _, l := range s.links {
		cv := ConnectorView{ID: l.ID, From: l.From, To: l.To, Mounted: s.mounted(l.From) && s.mounted(l.To)}
		if seg := s.segments[l.ID]; seg != nil {
			copied := *seg
			cv.Segment = &copied
		}
		f.Connectors = append(f.Connectors, cv)
	}

	for _, o := range s.def.Overlays {
		ov := OverlayView{ID: o.ID, Kind: o.Kind, Trigger: o.Trigger, Open: s.overlays.IsOpen(o.ID), Items: o.Items}
		if ov.Kind == "" {
			ov.Kind = deck.KindTooltip
		}
		if r, ok := s.overlayRects[o.ID]; ok {
			ov.Rect = &r
		}
		f.Overlays = append(f.Overlays, ov)
	}

	return f
}
