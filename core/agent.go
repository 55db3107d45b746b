package core

// Agent is a stateless unit of work that reads facts from a MemoryStore,
// derives new ones and writes them back.
//
// Agents communicate only through the store: Execute has no result channel
// other than its error. A nil error is OutcomeOk; any error is OutcomeError
// and halts the enclosing pipeline.
//
// Implementations must:
//   - Fail with the lookup error when a required fact is missing or mis-typed
//   - Report their own failed preconditions as *AgentError
//   - Not write a partial result for their intended output when they fail
type Agent interface {
	Name() string
	Execute(m MemoryStore) error
}

// Outcome is the binary result of an agent or pipeline step.
type Outcome int

const (
	// OutcomeOk means the step completed.
	OutcomeOk Outcome = iota
	// OutcomeError means the step failed.
	OutcomeError
)

// String returns the conventional result label.
func (o Outcome) String() string {
	if o == OutcomeOk {
		return "OK"
	}
	return "ERROR"
}

// OutcomeOf maps an Execute result to an Outcome.
func OutcomeOf(err error) Outcome {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOk
}
