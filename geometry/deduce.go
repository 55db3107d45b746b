package geometry

import (
	"errors"
	"fmt"

	"github.com/hupe1980/blackboard/agent"
	"github.com/hupe1980/blackboard/core"
)

var (
	// ErrAmbiguous means more than one angle is unknown.
	ErrAmbiguous = errors.New("more than one unknown angle")
	// ErrResolved means every angle is already known, so there is nothing to
	// deduce.
	ErrResolved = errors.New("no unknown angle")
	// ErrDegenerate means the known angles leave no positive remainder.
	ErrDegenerate = errors.New("known angles reach the angle sum")
)

// angleCalculationError is the narration shared by every deduction failure.
const angleCalculationError = "Angle calculation error"

// AngleDeduction fills in the single unknown angle of the triangle at
// AddressTriangle. The triangle is mutated in place.
type AngleDeduction struct {
	agent.BaseAgent
	events core.EventLog
}

// NewAngleDeduction creates the deduction agent narrating to events.
func NewAngleDeduction(events core.EventLog) *AngleDeduction {
	a := &AngleDeduction{BaseAgent: agent.NewBaseAgent("calculate_angles"), events: events}
	a.SetDescription("Deduces the single unknown triangle angle from the angle sum")
	return a
}

// Execute implements core.Agent.
func (a *AngleDeduction) Execute(m core.MemoryStore) error {
	return core.Update(m, AddressTriangle, func(t *Triangle) error {
		var cause error
		switch n := t.UnknownCount(); {
		case n == 0:
			cause = ErrResolved
		case n > 1:
			cause = fmt.Errorf("%w: %d unknown", ErrAmbiguous, n)
		}
		if cause != nil {
			return core.NewAgentError(a.Name(), angleCalculationError, cause)
		}

		remainder := AngleSum - t.KnownSum()
		if remainder <= 0 {
			return core.NewAgentError(a.Name(), angleCalculationError,
				fmt.Errorf("%w: remainder %.2f", ErrDegenerate, remainder))
		}

		for i := range t.Angles {
			if !t.Angles[i].Known {
				t.Angles[i] = Known(remainder)
				break
			}
		}
		if a.events != nil {
			a.events.Log(fmt.Sprintf("Calculated angle: %.2f°", remainder))
		}
		return nil
	})
}
