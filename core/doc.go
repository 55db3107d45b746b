// Package core provides the foundational contracts of the blackboard runtime.
// It defines:
//
//   - Facts (typed values held at string addresses)
//   - MemoryStore (the fact base shared by agents) plus typed helpers
//     Store, Get and Update that check type tags on every read
//   - Agents (stateless units that read and write facts)
//   - EventLog (an append-only narration sink)
//   - The error taxonomy (ErrNotFound, ErrTypeMismatch, ErrAgent)
//
// Concrete stores, pipelines and sinks live in the memory, agent and
// eventlog packages. The core carries no global state: every collaborator is
// passed in explicitly.
package core
