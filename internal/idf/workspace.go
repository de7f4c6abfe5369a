package idf

import (
	"io"
	"strings"
)

// Workspace is an ordered, mutable collection of objects.
type Workspace struct {
	objects []*Object
}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Len returns the number of objects.
func (w *Workspace) Len() int { return len(w.objects) }

// Objects returns the objects in insertion order. The slice is a copy but the
// objects are shared with the workspace.
func (w *Workspace) Objects() []*Object {
	return append([]*Object(nil), w.objects...)
}

// ObjectsByType returns every object of the given type, matched
// case-insensitively.
func (w *Workspace) ObjectsByType(typ string) []*Object {
	var out []*Object
	for _, o := range w.objects {
		if o.Is(typ) {
			out = append(out, o)
		}
	}
	return out
}

// ObjectByTypeAndName finds an object by type and name. Names compare
// case-insensitively.
func (w *Workspace) ObjectByTypeAndName(typ, name string) (*Object, bool) {
	for _, o := range w.objects {
		if o.Is(typ) && strings.EqualFold(o.Name(), name) {
			return o, true
		}
	}
	return nil, false
}

// AddObject appends a copy of o and returns the stored object.
func (w *Workspace) AddObject(o *Object) *Object {
	c := o.Clone()
	w.objects = append(w.objects, c)
	return c
}

// AddObjects appends copies of objs in order and returns the stored objects.
func (w *Workspace) AddObjects(objs []*Object) []*Object {
	out := make([]*Object, 0, len(objs))
	for _, o := range objs {
		out = append(out, w.AddObject(o))
	}
	return out
}

// RemoveObjectsByType deletes every object of the given type and returns how
// many were removed.
func (w *Workspace) RemoveObjectsByType(typ string) int {
	kept := w.objects[:0]
	removed := 0
	for _, o := range w.objects {
		if o.Is(typ) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	w.objects = kept
	return removed
}

// Clone returns a deep copy of the workspace.
func (w *Workspace) Clone() *Workspace {
	c := &Workspace{objects: make([]*Object, 0, len(w.objects))}
	for _, o := range w.objects {
		c.objects = append(c.objects, o.Clone())
	}
	return c
}

func (w *Workspace) Write(out io.Writer) error {
	return Write(out, w.objects)
}

func (w *Workspace) String() string {
	var sb strings.Builder
	_ = w.Write(&sb)
	return sb.String()
}
