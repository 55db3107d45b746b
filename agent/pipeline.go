package agent

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/logging"
)

// State is the position of a pipeline run in its lifecycle:
//
//	NotStarted -> Running -> Succeeded
//	                      \-> Failed
//
// Running advances one agent at a time and only on success. There are no
// retries and no backward transitions.
type State int

const (
	// StateNotStarted is the state before the start narration.
	StateNotStarted State = iota
	// StateRunning means agents are being executed.
	StateRunning
	// StateSucceeded means every agent and the verdict check completed.
	StateSucceeded
	// StateFailed means an agent or the verdict check failed.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Verdict configures the summary line a pipeline emits after its last agent.
// The pipeline reads the bool fact at Address and narrates WhenTrue or
// WhenFalse.
type Verdict struct {
	Address   string
	WhenTrue  string
	WhenFalse string
}

// Options configures a Pipeline.
type Options struct {
	// StartMessage is narrated before the first agent runs. Defaults to
	// "Starting <name>".
	StartMessage string
	// Verdict, when set, is read after the last agent succeeded.
	Verdict *Verdict
	// Logger receives structured diagnostics (defaults to NoOpLogger).
	Logger logging.Logger
	// NewRunID generates the id attached to each run (defaults to a UUID).
	NewRunID func() string
}

// WithStartMessage overrides the start narration.
func WithStartMessage(msg string) func(o *Options) {
	return func(o *Options) { o.StartMessage = msg }
}

// WithVerdict makes the pipeline narrate the bool fact at address once all
// agents succeeded.
func WithVerdict(address, whenTrue, whenFalse string) func(o *Options) {
	return func(o *Options) {
		o.Verdict = &Verdict{Address: address, WhenTrue: whenTrue, WhenFalse: whenFalse}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithRunIDGenerator overrides run id generation, mainly for deterministic tests.
func WithRunIDGenerator(fn func() string) func(o *Options) {
	return func(o *Options) { o.NewRunID = fn }
}

// Report summarizes one pipeline run.
type Report struct {
	RunID    string
	Pipeline string
	State    State
	// Completed counts agents that returned without error.
	Completed int
	// FailedAgent names the agent that halted the run. It is empty when the
	// run succeeded or failed on the verdict check.
	FailedAgent string
	Err         error
}

// Outcome maps the report to OutcomeOk or OutcomeError.
func (r *Report) Outcome() core.Outcome {
	if r.State == StateSucceeded {
		return core.OutcomeOk
	}
	return core.OutcomeError
}

// Pipeline runs an ordered list of agents against one shared store.
//
// Contract:
//   - Agent i+1 runs only after agent i returned nil
//   - The first error halts the run; no later agent runs and facts written
//     so far are kept
//   - Exactly one narration line describes a failure, also when it comes
//     from a nested pipeline
//   - The pipeline performs no fact lookups other than the optional verdict
type Pipeline struct {
	BaseAgent
	agents []core.Agent
	events core.EventLog
	opts   Options
}

// NewPipeline creates a pipeline narrating to events. A nil events discards
// narration.
func NewPipeline(name string, events core.EventLog, agents []core.Agent, optFns ...func(o *Options)) *Pipeline {
	opts := Options{
		StartMessage: fmt.Sprintf("Starting %s", name),
		Logger:       logging.NoOpLogger{},
		NewRunID:     uuid.NewString,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}
	if events == nil {
		events = core.EventLogFunc(func(string) {})
	}

	children := make([]core.Agent, len(agents))
	copy(children, agents)

	return &Pipeline{
		BaseAgent: NewBaseAgent(name),
		agents:    children,
		events:    events,
		opts:      opts,
	}
}

// Agents returns a copy of the pipeline's agents in execution order.
func (p *Pipeline) Agents() []core.Agent {
	out := make([]core.Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Execute implements core.Agent so pipelines can be nested.
func (p *Pipeline) Execute(m core.MemoryStore) error {
	return p.Run(m).Err
}

// Run executes every agent in order and reports the result.
func (p *Pipeline) Run(m core.MemoryStore) *Report {
	rep := &Report{RunID: p.opts.NewRunID(), Pipeline: p.Name(), State: StateNotStarted}
	log := p.opts.Logger
	attrs := []any{"pipeline", p.Name(), "run_id", rep.RunID}

	p.events.Log(p.opts.StartMessage)
	rep.State = StateRunning
	log.Debug("pipeline started", append(attrs, "agents", len(p.agents))...)

	for i, a := range p.agents {
		if err := a.Execute(m); err != nil {
			rep.FailedAgent = a.Name()
			log.Error("agent failed", append(attrs, "agent", a.Name(), "index", i, "error", err)...)
			wrapped := fmt.Errorf("pipeline %s halted at agent %s: %w", p.Name(), a.Name(), err)
			if _, nested := a.(*Pipeline); nested {
				// The nested pipeline already narrated the failure.
				return p.halt(rep, wrapped)
			}
			return p.fail(rep, a.Name(), wrapped)
		}
		rep.Completed++
		log.Debug("agent completed", append(attrs, "agent", a.Name(), "index", i)...)
	}

	if v := p.opts.Verdict; v != nil {
		ok, err := core.Get[bool](m, v.Address)
		if err != nil {
			log.Error("verdict unavailable", append(attrs, "address", v.Address, "error", err)...)
			return p.fail(rep, "", fmt.Errorf("pipeline %s verdict: %w", p.Name(), err))
		}
		if ok {
			p.events.Log(v.WhenTrue)
		} else {
			p.events.Log(v.WhenFalse)
		}
	}

	rep.State = StateSucceeded
	log.Info("pipeline succeeded", append(attrs, "completed", rep.Completed)...)

	return rep
}

func (p *Pipeline) fail(rep *Report, agentName string, err error) *Report {
	p.events.Log(DescribeFailure(agentName, err))
	return p.halt(rep, err)
}

func (p *Pipeline) halt(rep *Report, err error) *Report {
	rep.State = StateFailed
	rep.Err = err
	return rep
}

// DescribeFailure turns an agent or lookup error into a one-line narration
// naming the general nature of the failure.
func DescribeFailure(agentName string, err error) string {
	var ae *core.AgentError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	var fe *core.FactError
	if errors.As(err, &fe) {
		if errors.Is(fe, core.ErrTypeMismatch) {
			return fmt.Sprintf("Type mismatch for fact: %s", fe.Address)
		}
		return fmt.Sprintf("Missing fact: %s", fe.Address)
	}
	if agentName == "" {
		return "Pipeline failed"
	}
	return fmt.Sprintf("Agent %s failed", agentName)
}
