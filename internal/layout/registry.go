package layout

import (
	"sort"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

// Registry holds the measured screen rects of mounted nodes, keyed by stable node id.
// Readers look rects up by key; nothing holds on to node handles.
type Registry struct {
	rects      map[string]canvas.Rect
	generation uint64
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{rects: make(map[string]canvas.Rect)}
}

// Begin starts a new measurement pass, dropping everything measured before
func (r *Registry) Begin() {
	clear(r.rects)
	r.generation++
}

// Measure records the rect of a mounted node for the current pass
func (r *Registry) Measure(id string, rect canvas.Rect) {
	r.rects[id] = rect
}

// Forget drops a node, e.g. when it is unmounted
func (r *Registry) Forget(id string) {
	delete(r.rects, id)
}

// Lookup returns the measured rect for id, or nil if the node is not measured
func (r *Registry) Lookup(id string) *canvas.Rect {
	rect, ok := r.rects[id]
	if !ok {
		return nil
	}
	return &rect
}

// Generation counts measurement passes
func (r *Registry) Generation() uint64 {
	return r.generation
}

// IDs returns the measured node ids in sorted order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.rects))
	for id := range r.rects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
