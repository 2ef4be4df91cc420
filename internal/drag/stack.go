package drag

import "github.com/wrensk/windrag/internal/geometry"

// TransformStack holds a view's installed transforms keyed by name, ordered
// by z-order. View implementations embed one and expose it through the View
// interface; the core itself only installs and removes by name.
type TransformStack struct {
	entries []stackEntry
}

type stackEntry struct {
	name string
	t    Transform
}

// Add installs t under name, keeping the stack sorted by z-order. Entries
// with equal z-order keep insertion order.
func (s *TransformStack) Add(name string, t Transform) {
	e := stackEntry{name: name, t: t}
	pos := len(s.entries)
	for i, cur := range s.entries {
		if cur.t.ZOrder() > t.ZOrder() {
			pos = i
			break
		}
	}
	s.entries = append(s.entries, stackEntry{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = e
}

// Remove drops the transform installed under name. Removing an absent name
// is a no-op.
func (s *TransformStack) Remove(name string) {
	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.name != name {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// Get returns the transform installed under name, or nil.
func (s *TransformStack) Get(name string) Transform {
	for _, e := range s.entries {
		if e.name == name {
			return e.t
		}
	}
	return nil
}

// Empty reports whether no transforms are installed.
func (s *TransformStack) Empty() bool {
	return len(s.entries) == 0
}

// BoundingBox folds base through every transform in z-order.
func (s *TransformStack) BoundingBox(base geometry.Rect) geometry.Rect {
	box := base
	for _, e := range s.entries {
		box = e.t.BoundingBox(box)
	}
	return box
}

// Render draws src through the stack in z-order. Each transform receives
// the box produced by the transforms below it.
func (s *TransformStack) Render(src Texture, base geometry.Rect, damage []geometry.Rect, fb Framebuffer) {
	box := base
	for _, e := range s.entries {
		e.t.Render(src, box, damage, fb)
		box = e.t.BoundingBox(box)
	}
}
