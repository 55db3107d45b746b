package eventlog

import (
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/blackboard/core"
)

// DefaultPrefix is prepended to every console line.
const DefaultPrefix = "[SC] "

// Console writes one line per message to an io.Writer.
type Console struct {
	w      io.Writer
	prefix string
}

// NewConsole returns a Console writing to w (stdout when nil) with the
// default prefix.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w, prefix: DefaultPrefix}
}

// WithPrefix returns a copy of c using prefix.
func (c *Console) WithPrefix(prefix string) *Console {
	nc := *c
	nc.prefix = prefix
	return &nc
}

// Log writes the message. Write errors are dropped; narration is
// observational only.
func (c *Console) Log(message string) {
	_, _ = fmt.Fprintf(c.w, "%s%s\n", c.prefix, message)
}

// Discard is an EventLog that drops every message.
var Discard core.EventLog = core.EventLogFunc(func(string) {})
