package eventlog

import (
	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/logging"
)

// LoggerSink forwards narration to a structured logger at info level.
type LoggerSink struct {
	logger logging.Logger
	args   []any
}

// NewLoggerSink returns a sink writing to l. args are attached to every
// record.
func NewLoggerSink(l logging.Logger, args ...any) *LoggerSink {
	return &LoggerSink{logger: logging.OrNoOp(l), args: args}
}

// Log emits message as an info record.
func (s *LoggerSink) Log(message string) {
	s.logger.Info(message, s.args...)
}

type multi []core.EventLog

func (m multi) Log(message string) {
	for _, l := range m {
		l.Log(message)
	}
}

// Multi returns an EventLog that writes every message to each sink in order.
// Nil sinks are skipped.
func Multi(sinks ...core.EventLog) core.EventLog {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
