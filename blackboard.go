// Package blackboard provides a high-level façade over the fact store, the
// narration sink and structured logging, enabling rapid construction of
// blackboard pipelines. Most applications interact with this package by:
//  1. Creating a Blackboard via New() (optionally overriding default services)
//  2. Seeding initial facts with core.Store on Board.Memory()
//  3. Running one or more pipelines with Run
//
// All defaults are safe for local development and testing: an in-memory
// store, a discarding event log and a no-op logger.
package blackboard

import (
	"github.com/hupe1980/blackboard/agent"
	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/eventlog"
	"github.com/hupe1980/blackboard/logging"
	"github.com/hupe1980/blackboard/memory"
)

// Options configures the Blackboard instance.
type Options struct {
	// Memory is the shared fact base (defaults to an in-memory store).
	Memory core.MemoryStore

	// Events receives narration (defaults to eventlog.Discard).
	Events core.EventLog

	// Logger receives structured diagnostics (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Blackboard bundles one fact base with the collaborators pipelines need.
type Blackboard struct {
	opts Options
}

// New creates a Blackboard with optional overrides. Any unset service is
// initialized with its default implementation.
func New(optFns ...func(o *Options)) *Blackboard {
	opts := Options{
		Memory: memory.NewInMemoryStore(),
		Events: eventlog.Discard,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	opts.Logger = logging.OrNoOp(opts.Logger)
	if opts.Memory == nil {
		opts.Memory = memory.NewInMemoryStore()
	}
	if opts.Events == nil {
		opts.Events = eventlog.Discard
	}

	return &Blackboard{opts: opts}
}

// Memory returns the shared fact base.
func (b *Blackboard) Memory() core.MemoryStore { return b.opts.Memory }

// Events returns the narration sink.
func (b *Blackboard) Events() core.EventLog { return b.opts.Events }

// Logger returns the structured logger.
func (b *Blackboard) Logger() logging.Logger { return b.opts.Logger }

// PipelineOptions returns the pipeline options that bind a pipeline to this
// blackboard's logger.
func (b *Blackboard) PipelineOptions() []func(o *agent.Options) {
	return []func(o *agent.Options){agent.WithLogger(b.opts.Logger)}
}

// NewPipeline builds a pipeline narrating to this blackboard's event log.
func (b *Blackboard) NewPipeline(name string, agents []core.Agent, optFns ...func(o *agent.Options)) *agent.Pipeline {
	return agent.NewPipeline(name, b.opts.Events, agents, append(b.PipelineOptions(), optFns...)...)
}

// Run executes p against the shared fact base.
func (b *Blackboard) Run(p *agent.Pipeline) *agent.Report {
	return p.Run(b.opts.Memory)
}
