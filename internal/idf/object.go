// Package idf reads and writes the simulation engine's text definition format
// and provides an in-memory Workspace of its objects.
//
// The format is a sequence of objects. Each object is a type name followed by
// comma-separated fields and terminated by a semicolon. A '!' starts a comment
// that runs to the end of the line; a "!-" comment after a field names that
// field and is kept so files round-trip readably:
//
//	Timestep,
//	  4;                                      !- Number of Timesteps per Hour
package idf

import "strings"

// Object is one definition-format object. Field 0 is the object's name for
// every type that has one.
type Object struct {
	Type   string
	Fields []string

	// FieldComments runs parallel to Fields and may be shorter. Empty entries
	// mean no comment.
	FieldComments []string
}

// NewObject builds an object from its type and field values.
func NewObject(typ string, fields ...string) *Object {
	return &Object{Type: typ, Fields: fields}
}

// Is reports whether the object has the given type. Types compare
// case-insensitively, as the engine does.
func (o *Object) Is(typ string) bool {
	return strings.EqualFold(o.Type, typ)
}

// Name returns field 0, or "" for objects without fields.
func (o *Object) Name() string {
	s, _ := o.Field(0)
	return s
}

// Field returns field i and whether it exists.
func (o *Object) Field(i int) (string, bool) {
	if i < 0 || i >= len(o.Fields) {
		return "", false
	}
	return o.Fields[i], true
}

// SetField sets field i, growing the object with empty fields if needed.
func (o *Object) SetField(i int, value string) {
	for len(o.Fields) <= i {
		o.Fields = append(o.Fields, "")
	}
	o.Fields[i] = value
}

// FieldComment returns the "!-" comment recorded for field i.
func (o *Object) FieldComment(i int) string {
	if i < 0 || i >= len(o.FieldComments) {
		return ""
	}
	return o.FieldComments[i]
}

// SetFieldComment records the "!-" comment for field i.
func (o *Object) SetFieldComment(i int, comment string) {
	for len(o.FieldComments) <= i {
		o.FieldComments = append(o.FieldComments, "")
	}
	o.FieldComments[i] = comment
}

// WithComments sets the field comments in order and returns o.
func (o *Object) WithComments(comments ...string) *Object {
	o.FieldComments = comments
	return o
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	c := &Object{Type: o.Type}
	c.Fields = append([]string(nil), o.Fields...)
	if o.FieldComments != nil {
		c.FieldComments = append([]string(nil), o.FieldComments...)
	}
	return c
}
