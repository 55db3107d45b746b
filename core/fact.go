package core

import (
	"fmt"
	"reflect"
)

// TypeTag identifies the concrete Go type of a fact value. Tags are
// comparable; two tags are equal only when they name the same type.
type TypeTag struct {
	t reflect.Type
}

// TagOf returns the tag for T.
func TagOf[T any]() TypeTag { return TypeTag{t: reflect.TypeFor[T]()} }

// tagOfRef derives the tag of the value a pointer refers to.
func tagOfRef(ref any) TypeTag {
	rt := reflect.TypeOf(ref)
	if rt == nil || rt.Kind() != reflect.Pointer {
		return TypeTag{}
	}
	return TypeTag{t: rt.Elem()}
}

// IsZero reports whether the tag names no type.
func (t TypeTag) IsZero() bool { return t.t == nil }

// String returns the Go type name, e.g. "geometry.Triangle".
func (t TypeTag) String() string {
	if t.t == nil {
		return "<none>"
	}
	return t.t.String()
}

// Fact is a read-only view of one entry of a MemoryStore. Value is a copy of
// the stored value made the same way Get makes one: through Clone when the
// value provides it, by assignment otherwise.
type Fact struct {
	Address string
	Tag     TypeTag
	Value   any
}

// String returns a human readable representation of the fact.
func (f Fact) String() string {
	return fmt.Sprintf("%s(%s)=%v", f.Address, f.Tag, f.Value)
}
