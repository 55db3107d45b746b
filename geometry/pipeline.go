package geometry

import (
	"github.com/hupe1980/blackboard/agent"
	"github.com/hupe1980/blackboard/core"
)

// NewTriangleProcessing wires AngleDeduction and RightAngle into a pipeline
// that narrates whether the triangle is right-angled.
func NewTriangleProcessing(events core.EventLog, optFns ...func(o *agent.Options)) *agent.Pipeline {
	opts := []func(o *agent.Options){
		agent.WithStartMessage("Starting triangle processing"),
		agent.WithVerdict(AddressRightTriangle, "Triangle is right-angled", "Triangle is not right-angled"),
	}
	return agent.NewPipeline("triangle_processing", events,
		[]core.Agent{NewAngleDeduction(events), NewRightAngle(events)},
		append(opts, optFns...)...,
	)
}
