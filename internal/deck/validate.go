package deck

import (
	"errors"
	"fmt"

	"github.com/ivlev/canvasdeck/internal/layout"
)

// DefaultNodeSize is the glyph size used when a node doesn't set one
const DefaultNodeSize = "4rem"

// Validate checks every slide and returns all problems found, joined
func (d *Deck) Validate() error {
	var errs []error
	if len(d.Slides) == 0 {
		errs = append(errs, errors.New("deck has no slides"))
	}

	seen := map[string]bool{}
	for i := range d.Slides {
		s := &d.Slides[i]
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate slide %q", s.ID))
		}
		seen[s.ID] = true
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("slide %q: %w", s.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks ids, references and lengths of one slide
func (s *Slide) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.ID == "" {
		fail("slide id is required")
	}

	branches := map[string]Branch{}
	for _, b := range s.Branches {
		if _, dup := branches[b.ID]; dup {
			fail("duplicate branch %q", b.ID)
		}
		branches[b.ID] = b
	}

	overlays := map[string]bool{}
	for _, o := range s.Overlays {
		if overlays[o.ID] {
			fail("duplicate overlay %q", o.ID)
		}
		overlays[o.ID] = true
	}

	nodes := map[string]Node{}
	for _, n := range s.Nodes {
		if n.ID == "" {
			fail("node id is required")
			continue
		}
		if _, dup := nodes[n.ID]; dup {
			fail("duplicate node %q", n.ID)
		}
		nodes[n.ID] = n
	}

	for _, n := range s.Nodes {
		if _, err := ParseAnchor(n); err != nil {
			fail("node %q: %w", n.ID, err)
		}
		if _, err := NodeSize(n); err != nil {
			fail("node %q size: %w", n.ID, err)
		}
		if n.Branch != "" {
			if _, ok := branches[n.Branch]; !ok {
				fail("node %q: unknown branch %q", n.ID, n.Branch)
			}
		}
		if n.Toggles != "" {
			b, ok := branches[n.Toggles]
			switch {
			case !ok:
				fail("node %q: toggles unknown branch %q", n.ID, n.Toggles)
			case b.Parent != n.Branch:
				fail("node %q: toggles branch %q whose parent is %q, not %q", n.ID, n.Toggles, b.Parent, n.Branch)
			}
		}
		if n.Overlay != "" && !overlays[n.Overlay] {
			fail("node %q: unknown overlay %q", n.ID, n.Overlay)
		}
		if (n.Toggles != "" || n.Overlay != "") && !n.Clickable {
			fail("node %q: toggles something but is not clickable", n.ID)
		}
		if n.RelativeTo != "" {
			if _, ok := nodes[n.RelativeTo]; !ok {
				fail("node %q: relative to unknown node %q", n.ID, n.RelativeTo)
			} else if relativeCycle(nodes, n.ID) {
				fail("node %q: relativeTo chain forms a cycle", n.ID)
			}
		}
	}

	for _, c := range s.Connectors {
		if _, ok := nodes[c.From]; !ok {
			fail("connector %q: unknown node %q", c.ConnectorID(), c.From)
		}
		if _, ok := nodes[c.To]; !ok {
			fail("connector %q: unknown node %q", c.ConnectorID(), c.To)
		}
	}

	for _, o := range s.Overlays {
		if _, ok := nodes[o.Trigger]; !ok {
			fail("overlay %q: unknown trigger node %q", o.ID, o.Trigger)
		}
		switch o.Kind {
		case "", KindTooltip, KindThinking, KindInfo:
		default:
			fail("overlay %q: unknown kind %q", o.ID, o.Kind)
		}
	}

	groups := map[string][]Branch{}
	var groupOrder []string
	for _, b := range s.Branches {
		if b.Parent != "" {
			if _, ok := branches[b.Parent]; !ok {
				fail("branch %q: unknown parent %q", b.ID, b.Parent)
			} else if branchCycle(branches, b.ID) {
				fail("branch %q: parent chain forms a cycle", b.ID)
			}
		}
		if b.Group != "" {
			if _, ok := groups[b.Group]; !ok {
				groupOrder = append(groupOrder, b.Group)
			}
			groups[b.Group] = append(groups[b.Group], b)
		}
	}

	// members of an exclusivity group must share a parent
	for _, name := range groupOrder {
		members := groups[name]
		for _, m := range members[1:] {
			if m.Parent != members[0].Parent {
				fail("group %q: branches %q and %q are not siblings", name, members[0].ID, m.ID)
				break
			}
		}
	}

	return errors.Join(errs...)
}

// ParseAnchor converts a node's position and offset into a layout anchor.
// RelativeTo is not resolved here.
func ParseAnchor(n Node) (layout.Anchor, error) {
	var a layout.Anchor
	edges := []struct {
		name string
		src  string
		dst  *layout.Length
	}{
		{"left", n.Position.Left, &a.Left},
		{"top", n.Position.Top, &a.Top},
		{"right", n.Position.Right, &a.Right},
		{"bottom", n.Position.Bottom, &a.Bottom},
	}
	for _, e := range edges {
		l, err := layout.ParseLength(e.src)
		if err != nil {
			return layout.Anchor{}, fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = l
	}
	a.Offset.X, a.Offset.Y = n.Offset.X, n.Offset.Y
	return a, nil
}

// NodeSize returns the square footprint of a node in pixels
func NodeSize(n Node) (float64, error) {
	size := n.Size
	if size == "" {
		size = DefaultNodeSize
	}
	l, err := layout.ParseLength(size)
	if err != nil {
		return 0, err
	}
	if l.Percent != 0 || l.Pixels <= 0 {
		return 0, fmt.Errorf("%w: size must be a positive absolute length, got %q", layout.ErrInvalidLength, size)
	}
	return l.Pixels, nil
}

func relativeCycle(nodes map[string]Node, id string) bool {
	seen := map[string]bool{}
	for cur := id; cur != ""; cur = nodes[cur].RelativeTo {
		if seen[cur] {
			return true
		}
		seen[cur] = true
	}
	return false
}

func branchCycle(branches map[string]Branch, id string) bool {
	seen := map[string]bool{}
	for cur := id; cur != ""; cur = branches[cur].Parent {
		if seen[cur] {
			return true
		}
		seen[cur] = true
	}
	return false
}
