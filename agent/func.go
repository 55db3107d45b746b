package agent

import "github.com/hupe1980/blackboard/core"

// Func adapts a plain function to core.Agent.
type Func struct {
	BaseAgent
	fn func(m core.MemoryStore) error
}

// NewFunc wraps fn as an agent called name.
func NewFunc(name string, fn func(m core.MemoryStore) error) *Func {
	return &Func{BaseAgent: NewBaseAgent(name), fn: fn}
}

// Execute implements core.Agent.
func (f *Func) Execute(m core.MemoryStore) error { return f.fn(m) }
