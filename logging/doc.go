// Package logging provides a minimal logging interface and adapters for the
// blackboard runtime.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that pipelines and agents use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelDebug, Format: "text", Output: os.Stderr})
//	p := agent.NewPipeline("triangle", events, agents, agent.WithLogger(logger))
//
// The interface is kept small to avoid vendor lock-in while supporting
// structured key/value attributes.
package logging
