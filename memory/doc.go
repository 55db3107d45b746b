// Package memory contains concrete MemoryStore implementations. The store
// contract and the typed helpers (Store, Get, Update) reside in the core
// package. Depend on core.MemoryStore in agent code and select an
// implementation, like the in-memory store below, at wiring time.
package memory
