// Package disclosure tracks which branches of a slide are expanded and which overlays are open.
package disclosure

import (
	"errors"
	"fmt"
	"sort"
)

// Branch declares one collapsible subtree
type Branch struct {
	ID     string
	Parent string // empty for root-level branches
	Group  string // exclusivity group shared with sibling branches
	Open   bool   // initially expanded
}

type branch struct {
	Branch
	children []string
	expanded bool
}

// Tree is the expand/collapse state machine for one slide
type Tree struct {
	branches map[string]*branch
	order    []string
	groups   map[string][]string
}

// NewTree validates the declarations and returns a tree in its initial state
func NewTree(decls []Branch) (*Tree, error) {
	t := &Tree{
		branches: make(map[string]*branch, len(decls)),
		groups:   make(map[string][]string),
	}

	var errs []error
	for _, d := range decls {
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("branch id is required"))
			continue
		}
		if _, dup := t.branches[d.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate branch %q", d.ID))
			continue
		}
		t.branches[d.ID] = &branch{Branch: d}
		t.order = append(t.order, d.ID)
	}

	for _, id := range t.order {
		b := t.branches[id]
		if b.Parent != "" {
			p, ok := t.branches[b.Parent]
			if !ok {
				errs = append(errs, fmt.Errorf("branch %q: unknown parent %q", id, b.Parent))
				continue
			}
			p.children = append(p.children, id)
		}
		if b.Group != "" {
			t.groups[b.Group] = append(t.groups[b.Group], id)
		}
	}

	for _, id := range t.order {
		if t.cyclic(id) {
			errs = append(errs, fmt.Errorf("branch %q: parent chain forms a cycle", id))
		}
	}

	for name, members := range t.groups {
		parent := t.branches[members[0]].Parent
		for _, m := range members[1:] {
			if t.branches[m].Parent != parent {
				errs = append(errs, fmt.Errorf("group %q: %q and %q are not siblings", name, members[0], m))
				break
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, id := range t.order {
		if b := t.branches[id]; b.Open {
			t.Expand(id)
		}
	}
	return t, nil
}

func (t *Tree) cyclic(id string) bool {
	seen := map[string]bool{}
	for cur := id; cur != ""; {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		b, ok := t.branches[cur]
		if !ok {
			return false
		}
		cur = b.Parent
	}
	return false
}

// Has reports whether id names a declared branch
func (t *Tree) Has(id string) bool {
	_, ok := t.branches[id]
	return ok
}

// Toggle expands a collapsed branch or collapses an expanded one.
// Unknown ids are ignored.
func (t *Tree) Toggle(id string) {
	b, ok := t.branches[id]
	if !ok {
		return
	}
	if b.expanded {
		t.Collapse(id)
	} else {
		t.Expand(id)
	}
}

// Expand opens a branch and collapses the other members of its exclusivity group
func (t *Tree) Expand(id string) {
	b, ok := t.branches[id]
	if !ok || b.expanded {
		return
	}
	if b.Group != "" {
		for _, other := range t.groups[b.Group] {
			if other != id {
				t.Collapse(other)
			}
		}
	}
	b.expanded = true
}

// Collapse closes a branch together with all of its descendants
func (t *Tree) Collapse(id string) {
	b, ok := t.branches[id]
	if !ok {
		return
	}
	b.expanded = false
	for _, child := range b.children {
		t.Collapse(child)
	}
}

// Expanded reports the branch's own state, regardless of its ancestors
func (t *Tree) Expanded(id string) bool {
	b, ok := t.branches[id]
	return ok && b.expanded
}

// Mounted reports whether the branch and every ancestor are expanded.
// The empty id is the always-mounted slide root.
func (t *Tree) Mounted(id string) bool {
	for cur := id; cur != ""; {
		b, ok := t.branches[cur]
		if !ok || !b.expanded {
			return false
		}
		cur = b.Parent
	}
	return true
}

// Children returns the direct child branches in declaration order
func (t *Tree) Children(id string) []string {
	b, ok := t.branches[id]
	if !ok {
		return nil
	}
	return append([]string(nil), b.children...)
}

// State returns the expanded flag of every branch
func (t *Tree) State() map[string]bool {
	out := make(map[string]bool, len(t.branches))
	for id, b := range t.branches {
		out[id] = b.expanded
	}
	return out
}

// ExpandedIDs lists the expanded branches in sorted order
func (t *Tree) ExpandedIDs() []string {
	var ids []string
	for id, b := range t.branches {
		if b.expanded {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Reset collapses everything and reopens the initially open branches
func (t *Tree) Reset() {
	for _, b := range t.branches {
		b.expanded = false
	}
	for _, id := range t.order {
		if t.branches[id].Open {
			t.Expand(id)
		}
	}
}
