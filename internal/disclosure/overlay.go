package disclosure

import (
	"errors"
	"fmt"
	"sort"
)

// Overlay declares a tooltip or info panel shown next to a trigger node.
// Overlays toggle independently of branch expansion.
type Overlay struct {
	ID               string
	Trigger          string // node id the overlay belongs to
	Group            string // only one overlay per group is open at a time
	DismissOnOutside bool
}

// Overlays tracks which overlays are open
type Overlays struct {
	decls  map[string]Overlay
	order  []string
	open   map[string]bool
	groups map[string][]string
}

// NewOverlays validates the declarations; all overlays start closed
func NewOverlays(decls []Overlay) (*Overlays, error) {
	o := &Overlays{
		decls:  make(map[string]Overlay, len(decls)),
		open:   make(map[string]bool),
		groups: make(map[string][]string),
	}

	var errs []error
	for _, d := range decls {
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("overlay id is required"))
			continue
		}
		if _, dup := o.decls[d.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate overlay %q", d.ID))
			continue
		}
		o.decls[d.ID] = d
		o.order = append(o.order, d.ID)
		if d.Group != "" {
			o.groups[d.Group] = append(o.groups[d.Group], d.ID)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return o, nil
}

// Toggle opens a closed overlay or closes an open one
func (o *Overlays) Toggle(id string) {
	if o.open[id] {
		o.Close(id)
	} else {
		o.Open(id)
	}
}

// Open shows an overlay, closing the other members of its group
func (o *Overlays) Open(id string) {
	d, ok := o.decls[id]
	if !ok {
		return
	}
	if d.Group != "" {
		for _, other := range o.groups[d.Group] {
			delete(o.open, other)
		}
	}
	o.open[id] = true
}

// Close hides an overlay
func (o *Overlays) Close(id string) {
	delete(o.open, id)
}

// IsOpen reports whether the overlay is shown
func (o *Overlays) IsOpen(id string) bool {
	return o.open[id]
}

// Prune closes overlays whose trigger node is no longer mounted and returns their ids
func (o *Overlays) Prune(mounted func(node string) bool) []string {
	var closed []string
	for _, id := range o.order {
		if o.open[id] && !mounted(o.decls[id].Trigger) {
			delete(o.open, id)
			closed = append(closed, id)
		}
	}
	return closed
}

// DismissOutside closes every open overlay with DismissOnOutside set for which
// inside reports false. inside receives the overlay declaration so the caller can
// check both the overlay's own rect and its trigger's.
func (o *Overlays) DismissOutside(inside func(Overlay) bool) []string {
	var closed []string
	for _, id := range o.order {
		d := o.decls[id]
		if o.open[id] && d.DismissOnOutside && !inside(d) {
			delete(o.open, id)
			closed = append(closed, id)
		}
	}
	return closed
}

// OpenIDs lists the open overlays in sorted order
func (o *Overlays) OpenIDs() []string {
	ids := make([]string, 0, len(o.open))
	for id := range o.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset closes every overlay
func (o *Overlays) Reset() {
	clear(o.open)
}
