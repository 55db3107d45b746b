package core

// EventLog is an append-only narration sink. Log must emit the message
// before returning so that lines appear in the order agents produce them.
// The runtime never reads the log back.
type EventLog interface {
	Log(message string)
}

// EventLogFunc adapts a function to EventLog.
type EventLogFunc func(message string)

// Log calls f(message).
func (f EventLogFunc) Log(message string) { f(message) }
