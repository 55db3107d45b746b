package agent

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/eventlog"
	"github.com/hupe1980/blackboard/internal/testutil"
	"github.com/hupe1980/blackboard/logging"
	"github.com/hupe1980/blackboard/memory"
)

func fixedRunID(id string) func(o *Options) {
	return WithRunIDGenerator(func() string { return id })
}

func TestNewPipeline(t *testing.T) {
	child1 := NewMockAgent("Child 1")
	child2 := NewMockAgent("Child 2")

	p := NewPipeline("Pipeline", nil, []core.Agent{child1, child2})

	assert.NotNil(t, p)
	assert.Equal(t, "Pipeline", p.Name())
	assert.Equal(t, []core.Agent{child1, child2}, p.Agents())
	assert.Equal(t, "Starting Pipeline", p.opts.StartMessage)
	assert.IsType(t, logging.NoOpLogger{}, p.opts.Logger)
}

func TestPipeline_CopiesAgentSlice(t *testing.T) {
	agents := []core.Agent{NewMockAgent("a")}
	p := NewPipeline("p", nil, agents)
	agents[0] = NewMockAgent("b")

	assert.Equal(t, "a", p.Agents()[0].Name())
}

func TestPipeline_Run_Success(t *testing.T) {
	m := memory.NewInMemoryStore()
	child1 := NewMockAgent("Child 1")
	child2 := NewMockAgent("Child 2")
	child3 := NewMockAgent("Child 3")

	child1.On("Execute", m).Return(nil).Once()
	child2.On("Execute", m).Return(nil).Once()
	child3.On("Execute", m).Return(nil).Once()

	rec := eventlog.NewRecorder()
	p := NewPipeline("Pipeline", rec, []core.Agent{child1, child2, child3}, fixedRunID("run-1"))

	rep := p.Run(m)

	require.NoError(t, rep.Err)
	assert.Equal(t, StateSucceeded, rep.State)
	assert.Equal(t, core.OutcomeOk, rep.Outcome())
	assert.Equal(t, 3, rep.Completed)
	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, "Pipeline", rep.Pipeline)
	assert.Empty(t, rep.FailedAgent)
	assert.Equal(t, []string{"Starting Pipeline"}, rec.Lines())

	child1.AssertExpectations(t)
	child2.AssertExpectations(t)
	child3.AssertExpectations(t)
}

func TestPipeline_RunsInOrder(t *testing.T) {
	trail := &testutil.Trail{}
	p := NewPipeline("ordered", nil, []core.Agent{
		testutil.NewMarkerAgent("a", trail),
		testutil.NewMarkerAgent("b", trail),
		testutil.NewMarkerAgent("c", trail),
	})

	require.NoError(t, p.Execute(memory.NewInMemoryStore()))
	assert.Equal(t, []string{"a", "b", "c"}, trail.Names)
}

func TestPipeline_Run_FirstChildError(t *testing.T) {
	m := memory.NewInMemoryStore()
	child1 := NewMockAgent("Child 1")
	child2 := NewMockAgent("Child 2")

	child1.On("Execute", m).Return(assert.AnError)

	p := NewPipeline("Pipeline", nil, []core.Agent{child1, child2})
	err := p.Execute(m)

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError) // original error is wrapped
	child1.AssertExpectations(t)
	child2.AssertNotCalled(t, "Execute", m)
}

func TestPipeline_ShortCircuit(t *testing.T) {
	for k := 0; k < 4; k++ {
		t.Run(fmt.Sprintf("fail_at_%d", k), func(t *testing.T) {
			m := memory.NewInMemoryStore()
			counters := make([]*testutil.CountingAgent, 4)
			agents := make([]core.Agent, 0, 5)
			var failing *testutil.FailingAgent
			for i := range counters {
				if i == k {
					failing = testutil.NewFailingAgent("failing", nil)
					agents = append(agents, failing)
				}
				counters[i] = testutil.NewCountingAgent(fmt.Sprintf("counter-%d", i))
				agents = append(agents, counters[i])
			}

			rep := NewPipeline("p", nil, agents).Run(m)

			assert.Equal(t, StateFailed, rep.State)
			assert.Equal(t, core.OutcomeError, rep.Outcome())
			assert.Equal(t, "failing", rep.FailedAgent)
			assert.Equal(t, k, rep.Completed)
			assert.ErrorIs(t, rep.Err, core.ErrAgent)
			assert.Equal(t, 1, failing.Calls)
			for i, c := range counters {
				if i < k {
					assert.Equal(t, 1, c.Calls, "agent %d before the failure runs", i)
				} else {
					assert.Zero(t, c.Calls, "agent %d after the failure never runs", i)
				}
			}
		})
	}
}

func TestPipeline_NoRollback(t *testing.T) {
	m := memory.NewInMemoryStore()
	p := NewPipeline("p", nil, []core.Agent{
		testutil.NewWriterAgent("writer", "partial", 7),
		testutil.NewFailingAgent("failing", nil),
		testutil.NewWriterAgent("never", "after", 8),
	})

	require.Error(t, p.Execute(m))

	v, err := core.Get[int](m, "partial")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.False(t, core.Has(m, "after"))
}

func TestPipeline_Run_NoAgents(t *testing.T) {
	rec := eventlog.NewRecorder()
	rep := NewPipeline("empty", rec, nil).Run(memory.NewInMemoryStore())

	assert.NoError(t, rep.Err)
	assert.Equal(t, StateSucceeded, rep.State)
	assert.Equal(t, 0, rep.Completed)
	assert.Equal(t, []string{"Starting empty"}, rec.Lines())
}

func TestPipeline_Verdict(t *testing.T) {
	tests := []struct {
		name  string
		value bool
		want  string
	}{
		{"true", true, "Triangle is right-angled"},
		{"false", false, "Triangle is not right-angled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := eventlog.NewRecorder()
			p := NewPipeline("triangle", rec,
				[]core.Agent{testutil.NewWriterAgent("check", "is_right", tt.value)},
				WithStartMessage("Starting triangle processing"),
				WithVerdict("is_right", "Triangle is right-angled", "Triangle is not right-angled"),
			)

			rep := p.Run(memory.NewInMemoryStore())

			require.NoError(t, rep.Err)
			assert.Equal(t, []string{"Starting triangle processing", tt.want}, rec.Lines())
		})
	}
}

func TestPipeline_VerdictFailures(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		rec := eventlog.NewRecorder()
		p := NewPipeline("p", rec, nil, WithVerdict("is_right", "yes", "no"))

		rep := p.Run(memory.NewInMemoryStore())

		assert.Equal(t, StateFailed, rep.State)
		assert.ErrorIs(t, rep.Err, core.ErrNotFound)
		assert.Empty(t, rep.FailedAgent)
		assert.Equal(t, []string{"Starting p", "Missing fact: is_right"}, rec.Lines())
	})

	t.Run("mistyped", func(t *testing.T) {
		rec := eventlog.NewRecorder()
		p := NewPipeline("p", rec,
			[]core.Agent{testutil.NewWriterAgent("check", "is_right", 1)},
			WithVerdict("is_right", "yes", "no"),
		)

		rep := p.Run(memory.NewInMemoryStore())

		assert.Equal(t, StateFailed, rep.State)
		assert.ErrorIs(t, rep.Err, core.ErrTypeMismatch)
		assert.Equal(t, 1, rep.Completed)
		assert.Equal(t, []string{"Starting p", "Type mismatch for fact: is_right"}, rec.Lines())
	})
}

func TestPipeline_FailureNarratedOnce(t *testing.T) {
	rec := eventlog.NewRecorder()
	p := NewPipeline("p", rec,
		[]core.Agent{testutil.NewFailingAgent("deduce", core.NewAgentError("deduce", "Angle calculation error", nil))},
		WithVerdict("is_right", "yes", "no"),
	)

	rep := p.Run(memory.NewInMemoryStore())

	assert.Equal(t, StateFailed, rep.State)
	assert.Equal(t, []string{"Starting p", "Angle calculation error"}, rec.Lines())
}

func TestPipeline_Nested(t *testing.T) {
	m := memory.NewInMemoryStore()
	inner := NewPipeline("inner", nil, []core.Agent{testutil.NewWriterAgent("w", "x", "inner")})
	counter := testutil.NewCountingAgent("after")
	outer := NewPipeline("outer", nil, []core.Agent{inner, counter})

	rep := outer.Run(m)

	require.NoError(t, rep.Err)
	assert.Equal(t, 2, rep.Completed)
	assert.Equal(t, 1, counter.Calls)
	v, err := core.Get[string](m, "x")
	require.NoError(t, err)
	assert.Equal(t, "inner", v)
}

func TestPipeline_NestedFailureNarratedOnce(t *testing.T) {
	m := memory.NewInMemoryStore()
	rec := eventlog.NewRecorder()
	inner := NewPipeline("inner", rec, []core.Agent{testutil.NewFailingAgent("broken", nil)})
	counter := testutil.NewCountingAgent("after")
	outer := NewPipeline("outer", rec, []core.Agent{inner, counter})

	rep := outer.Run(m)

	assert.Equal(t, StateFailed, rep.State)
	assert.Equal(t, "inner", rep.FailedAgent)
	assert.ErrorIs(t, rep.Err, core.ErrAgent)
	assert.Equal(t, 0, counter.Calls)
	assert.Equal(t, []string{"Starting outer", "Starting inner", "forced failure"}, rec.Lines())
}

func TestPipeline_StructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelDebug, Format: "text", Output: &buf})

	p := NewPipeline("p", nil,
		[]core.Agent{testutil.NewCountingAgent("a"), testutil.NewFailingAgent("b", nil)},
		WithLogger(logger), fixedRunID("run-42"),
	)
	p.Run(memory.NewInMemoryStore())

	out := buf.String()
	assert.Contains(t, out, "pipeline started")
	assert.Contains(t, out, "agent completed")
	assert.Contains(t, out, "agent failed")
	assert.Contains(t, out, "run_id=run-42")
	assert.Contains(t, out, "agent=b")
}

func TestPipeline_DefaultRunIDsAreUnique(t *testing.T) {
	p := NewPipeline("p", nil, nil)
	m := memory.NewInMemoryStore()

	a := p.Run(m).RunID
	b := p.Run(m).RunID

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestDescribeFailure(t *testing.T) {
	tests := []struct {
		name  string
		agent string
		err   error
		want  string
	}{
		{"agent error", "deduce", core.NewAgentError("deduce", "Angle calculation error", nil), "Angle calculation error"},
		{"not found", "check", &core.FactError{Address: "input_triangle", Err: core.ErrNotFound}, "Missing fact: input_triangle"},
		{"mismatch", "check", fmt.Errorf("wrapped: %w", &core.FactError{Address: "rules_set", Err: core.ErrTypeMismatch}), "Type mismatch for fact: rules_set"},
		{"other", "check", assert.AnError, "Agent check failed"},
		{"other without agent", "", assert.AnError, "Pipeline failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeFailure(tt.agent, tt.err))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_started", StateNotStarted.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(9).String())
}
