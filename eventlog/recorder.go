package eventlog

// Recorder captures messages in memory.
type Recorder struct {
	lines []string
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Log appends message.
func (r *Recorder) Log(message string) { r.lines = append(r.lines, message) }

// Lines returns a copy of the recorded messages in emission order.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of recorded messages.
func (r *Recorder) Len() int { return len(r.lines) }

// Reset drops all recorded messages.
func (r *Recorder) Reset() { r.lines = r.lines[:0] }
