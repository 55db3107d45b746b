// Package render prints memory store contents for humans. It is the
// presentation collaborator of the blackboard: it reads facts through
// core.MemoryStore.Facts and never influences pipeline logic.
package render
