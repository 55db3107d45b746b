// Package eventlog provides core.EventLog sinks: a console writer, a
// capturing recorder, a bridge to structured logging and a fan-out tee.
// Every sink emits synchronously, so lines keep the order in which agents
// produce them.
package eventlog
