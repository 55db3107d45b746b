package agent

import "fmt"

// BaseAgent bundles identity helpers shared by concrete agents. Embed it and
// supply an Execute method to satisfy core.Agent.
type BaseAgent struct {
	name        string // Human-readable name
	description string // Detailed description of agent's purpose
}

// NewBaseAgent constructs a BaseAgent with generated description (customizable via SetDescription).
func NewBaseAgent(name string) BaseAgent {
	return BaseAgent{
		name:        name,
		description: fmt.Sprintf("Agent %s", name),
	}
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// SetDescription updates the agent's description.
func (b *BaseAgent) SetDescription(desc string) { b.description = desc }
