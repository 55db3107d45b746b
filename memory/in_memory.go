package memory

import (
	"iter"
	"reflect"

	"github.com/hupe1980/blackboard/core"
)

// entry is one address slot. Replacing a fact swaps the whole entry so tag
// and value always change together.
type entry struct {
	address string
	tag     core.TypeTag
	ref     any // pointer to the store-owned value
}

// InMemoryStore is a process-local MemoryStore keeping facts in insertion
// order. Overwriting an address keeps its original position.
//
// Concurrency: none. The store assumes a single active agent at a time, which
// a pipeline guarantees by running agents sequentially. Wrap it with a mutex
// before sharing it between goroutines.
type InMemoryStore struct {
	index   map[string]int // address -> position in entries
	entries []entry
}

// NewInMemoryStore creates an empty in-memory fact base.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{index: make(map[string]int)}
}

// Put inserts or replaces the fact at address. It panics when address is
// empty or ref is not a non-nil pointer.
func (s *InMemoryStore) Put(address string, ref any) {
	if address == "" {
		panic("memory: empty fact address")
	}
	e := entry{address: address, tag: core.TagOfRef(ref), ref: ref}
	if i, ok := s.index[address]; ok {
		s.entries[i] = e
		return
	}
	s.index[address] = len(s.entries)
	s.entries = append(s.entries, e)
}

// Lookup returns the store-owned pointer at address when its tag equals want.
func (s *InMemoryStore) Lookup(address string, want core.TypeTag) (any, error) {
	i, ok := s.index[address]
	if !ok {
		return nil, &core.FactError{Address: address, Want: want, Err: core.ErrNotFound}
	}
	e := s.entries[i]
	if e.tag != want {
		return nil, &core.FactError{Address: address, Want: want, Got: e.tag, Err: core.ErrTypeMismatch}
	}
	return e.ref, nil
}

// Facts yields a copy of each fact in insertion order, made by
// core.CloneValue. Each iteration reads the current contents, so the sequence
// can be restarted after writes.
func (s *InMemoryStore) Facts() iter.Seq[core.Fact] {
	return func(yield func(core.Fact) bool) {
		for i := 0; i < len(s.entries); i++ {
			e := s.entries[i]
			f := core.Fact{
				Address: e.address,
				Tag:     e.tag,
				Value:   core.CloneValue(reflect.ValueOf(e.ref).Elem().Interface()),
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Addresses returns the fact addresses in insertion order.
func (s *InMemoryStore) Addresses() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.address
	}
	return out
}

// Len returns the number of stored facts.
func (s *InMemoryStore) Len() int { return len(s.entries) }
