package core

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

// MemoryStore is the fact base shared by the agents of a pipeline. It maps
// addresses to store-owned values tagged with their concrete type.
//
// Most callers use the typed helpers Store, Get and Update instead of the raw
// methods. Implementations are not required to be safe for concurrent use;
// a pipeline runs one agent at a time.
type MemoryStore interface {
	// Put inserts or replaces the fact at address. ref must be a non-nil
	// pointer; the store takes ownership of the value it points to and
	// records the pointee type as the fact's tag.
	Put(address string, ref any)
	// Lookup returns the store-owned pointer at address if its tag equals
	// want. It fails with ErrNotFound or ErrTypeMismatch (as *FactError).
	Lookup(address string, want TypeTag) (any, error)
	// Facts yields a copy of every fact in insertion order. The sequence is
	// lazy and may be iterated more than once.
	Facts() iter.Seq[Fact]
	// Addresses returns the addresses in insertion order.
	Addresses() []string
	// Len returns the number of facts.
	Len() int
}

// Store writes value at address, replacing any previous fact. The value is
// copied into a cell owned by the store and tagged with its concrete type:
// when T is an interface type the tag is the dynamic type of value, so
// Store(m, "n", any(7)) is read back with Get[int].
//
// An empty address or a nil interface value is a programming error and
// panics; otherwise Store always succeeds.
func Store[T any](m MemoryStore, address string, value T) {
	if reflect.TypeFor[T]().Kind() != reflect.Interface {
		owned := value
		m.Put(address, &owned)
		return
	}

	dyn := reflect.ValueOf(value)
	if !dyn.IsValid() {
		panic(fmt.Sprintf("core: nil %s value stored at %q", reflect.TypeFor[T](), address))
	}
	cell := reflect.New(dyn.Type())
	cell.Elem().Set(dyn)
	m.Put(address, cell.Interface())
}

// Get returns a copy of the T stored at address. Values implementing
// Cloner[T] are returned through Clone; other values are copied by
// assignment, so maps and slices inside them still alias the store.
func Get[T any](m MemoryStore, address string) (T, error) {
	var zero T
	ref, err := lookup[T](m, address)
	if err != nil {
		return zero, err
	}
	if c, ok := any(*ref).(Cloner[T]); ok {
		return c.Clone(), nil
	}
	return *ref, nil
}

// Cloner is implemented by fact values holding reference types (maps,
// slices, pointers) that must not leak out of the store through Get or
// Facts.
type Cloner[T any] interface {
	Clone() T
}

// CloneValue returns a copy of v for read-only views. When v has a method
// Clone() returning its own type, that result is used; otherwise v is
// returned as is.
func CloneValue(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return v
	}
	fn := rv.MethodByName("Clone")
	if !fn.IsValid() {
		return v
	}
	ft := fn.Type()
	if ft.NumIn() != 0 || ft.NumOut() != 1 || ft.Out(0) != rv.Type() {
		return v
	}
	return fn.Call(nil)[0].Interface()
}

// Update gives fn a mutable view of the T stored at address. Changes made
// through the pointer are visible to later reads without a separate Store.
// The pointer is valid only until fn returns. The error returned by fn is
// passed through unchanged; mutations made before it are kept.
func Update[T any](m MemoryStore, address string, fn func(*T) error) error {
	ref, err := lookup[T](m, address)
	if err != nil {
		return err
	}
	return fn(ref)
}

// Has reports whether any fact exists at address, regardless of its type.
func Has(m MemoryStore, address string) bool {
	_, err := m.Lookup(address, TypeTag{})
	return !errors.Is(err, ErrNotFound)
}

func lookup[T any](m MemoryStore, address string) (*T, error) {
	want := TagOf[T]()
	raw, err := m.Lookup(address, want)
	if err != nil {
		return nil, err
	}
	ref, ok := raw.(*T)
	if !ok {
		return nil, &FactError{Address: address, Want: want, Got: tagOfRef(raw), Err: ErrTypeMismatch}
	}
	return ref, nil
}

// TagOfRef returns the tag a MemoryStore records for ref. It panics when ref
// is not a non-nil pointer; storing anything else is a programming error.
func TagOfRef(ref any) TypeTag {
	tag := tagOfRef(ref)
	if tag.IsZero() || reflect.ValueOf(ref).IsNil() {
		panic(fmt.Sprintf("core: fact value must be a non-nil pointer, got %T", ref))
	}
	return tag
}
