package testutil

import (
	"github.com/hupe1980/blackboard/core"
)

// CountingAgent records how often it was executed.
type CountingAgent struct {
	name  string
	Calls int
}

// NewCountingAgent creates a CountingAgent.
func NewCountingAgent(name string) *CountingAgent { return &CountingAgent{name: name} }

// Name implements core.Agent.
func (c *CountingAgent) Name() string { return c.name }

// Execute increments Calls and succeeds.
func (c *CountingAgent) Execute(core.MemoryStore) error {
	c.Calls++
	return nil
}

// FailingAgent always returns Err.
type FailingAgent struct {
	name  string
	Err   error
	Calls int
}

// NewFailingAgent creates an agent failing with err. A nil err is replaced
// by an AgentError with reason "forced failure".
func NewFailingAgent(name string, err error) *FailingAgent {
	if err == nil {
		err = core.NewAgentError(name, "forced failure", nil)
	}
	return &FailingAgent{name: name, Err: err}
}

// Name implements core.Agent.
func (f *FailingAgent) Name() string { return f.name }

// Execute returns the configured error.
func (f *FailingAgent) Execute(core.MemoryStore) error {
	f.Calls++
	return f.Err
}

// WriterAgent stores a fixed value at an address.
type WriterAgent[T any] struct {
	name    string
	address string
	value   T
}

// NewWriterAgent creates an agent that stores value at address.
func NewWriterAgent[T any](name, address string, value T) *WriterAgent[T] {
	return &WriterAgent[T]{name: name, address: address, value: value}
}

// Name implements core.Agent.
func (w *WriterAgent[T]) Name() string { return w.name }

// Execute stores the value.
func (w *WriterAgent[T]) Execute(m core.MemoryStore) error {
	core.Store(m, w.address, w.value)
	return nil
}

// Trail is an ordered record shared by MarkerAgents.
type Trail struct{ Names []string }

// MarkerAgent appends its name to a shared Trail.
type MarkerAgent struct {
	name  string
	trail *Trail
}

// NewMarkerAgent creates a MarkerAgent writing to trail.
func NewMarkerAgent(name string, trail *Trail) *MarkerAgent {
	return &MarkerAgent{name: name, trail: trail}
}

// Name implements core.Agent.
func (a *MarkerAgent) Name() string { return a.name }

// Execute records the agent name.
func (a *MarkerAgent) Execute(core.MemoryStore) error {
	a.trail.Names = append(a.trail.Names, a.name)
	return nil
}
