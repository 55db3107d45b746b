package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no fact exists at the requested address.
	ErrNotFound = errors.New("fact not found")

	// ErrTypeMismatch is returned when a fact exists but its type tag differs
	// from the one the caller expects. It signals a wiring mistake; values are
	// never converted.
	ErrTypeMismatch = errors.New("fact type mismatch")

	// ErrAgent marks a failed agent precondition.
	ErrAgent = errors.New("agent precondition failed")
)

// FactError describes a failed lookup. It unwraps to ErrNotFound or
// ErrTypeMismatch.
type FactError struct {
	Address string
	Want    TypeTag
	Got     TypeTag // zero for ErrNotFound
	Err     error
}

func (e *FactError) Error() string {
	if errors.Is(e.Err, ErrTypeMismatch) {
		return fmt.Sprintf("%v: %q holds %s, want %s", e.Err, e.Address, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Address)
}

func (e *FactError) Unwrap() error { return e.Err }

// AgentError reports a failed agent precondition. Reason is a short
// human-readable cause suitable for narration; Cause optionally carries a
// package-level sentinel so callers can distinguish reasons with errors.Is.
type AgentError struct {
	Agent  string
	Reason string
	Cause  error
}

// NewAgentError constructs an AgentError.
func NewAgentError(agent, reason string, cause error) *AgentError {
	return &AgentError{Agent: agent, Reason: reason, Cause: cause}
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("agent %s: %s: %v", e.Agent, e.Reason, e.Cause)
	}
	return fmt.Sprintf("agent %s: %s", e.Agent, e.Reason)
}

// Unwrap exposes both ErrAgent and the optional cause.
func (e *AgentError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrAgent}
	}
	return []error{ErrAgent, e.Cause}
}
