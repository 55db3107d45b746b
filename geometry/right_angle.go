package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/blackboard/agent"
	"github.com/hupe1980/blackboard/core"
)

// RightAngle stores whether the triangle at AddressTriangle has a right
// angle as a bool at AddressRightTriangle.
//
// The threshold comes from the optional RulesSet at AddressRules
// (RuleRightAngleThreshold), defaulting to DefaultRightAngle. A fact of the
// wrong type at AddressRules is a wiring error and fails the agent.
type RightAngle struct {
	agent.BaseAgent
	events core.EventLog
}

// NewRightAngle creates the right-angle agent narrating to events.
func NewRightAngle(events core.EventLog) *RightAngle {
	a := &RightAngle{BaseAgent: agent.NewBaseAgent("check_right_angle"), events: events}
	a.SetDescription("Detects a right angle in the triangle")
	return a
}

// Execute implements core.Agent.
func (a *RightAngle) Execute(m core.MemoryStore) error {
	t, err := core.Get[Triangle](m, AddressTriangle)
	if err != nil {
		return err
	}
	threshold, err := a.threshold(m)
	if err != nil {
		return err
	}

	right := false
	for _, angle := range t.Angles {
		if angle.Known && math.Abs(angle.Value-threshold) < Tolerance {
			right = true
			break
		}
	}

	core.Store(m, AddressRightTriangle, right)
	if right && a.events != nil {
		a.events.Log(fmt.Sprintf("Right angle detected (%g°)", threshold))
	}
	return nil
}

func (a *RightAngle) threshold(m core.MemoryStore) (float64, error) {
	rules, err := core.Get[RulesSet](m, AddressRules)
	if errors.Is(err, core.ErrNotFound) {
		return DefaultRightAngle, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := rules.Float(RuleRightAngleThreshold, DefaultRightAngle)
	if err != nil {
		return 0, core.NewAgentError(a.Name(), "Invalid right angle rule", err)
	}
	return v, nil
}
