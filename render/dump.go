package render

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/hupe1980/blackboard/core"
)

// Formatter renders one fact value.
type Formatter func(value any) string

// Dumper renders facts as aligned "address: value" lines between a header
// and a footer.
type Dumper struct {
	title      string
	width      int
	formatters map[core.TypeTag]Formatter
}

// NewDumper returns a Dumper with formatters for bool, int, float64 and
// string values.
func NewDumper() *Dumper {
	d := &Dumper{title: "Memory Dump", width: 20, formatters: map[core.TypeTag]Formatter{}}
	Register(d, strconv.FormatBool)
	Register(d, strconv.Itoa)
	Register(d, func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) })
	Register(d, strconv.Quote)
	return d
}

// Register installs fn as the formatter for values of type T, replacing any
// previous one.
func Register[T any](d *Dumper, fn func(T) string) {
	d.formatters[core.TagOf[T]()] = func(v any) string {
		typed, ok := v.(T)
		if !ok {
			return unknownLabel(v)
		}
		return fn(typed)
	}
}

// WithTitle returns a copy of d using title in the header.
func (d *Dumper) WithTitle(title string) *Dumper {
	nd := *d
	nd.title = title
	return &nd
}

// Format renders a single fact value. Lookup order: registered formatter,
// fmt.Stringer, then an "<unknown TYPE>" label.
func (d *Dumper) Format(f core.Fact) string {
	if fn, ok := d.formatters[f.Tag]; ok {
		return fn(f.Value)
	}
	if s, ok := f.Value.(fmt.Stringer); ok {
		return s.String()
	}
	return unknownLabel(f.Value)
}

// Dump writes facts to w.
func (d *Dumper) Dump(w io.Writer, facts iter.Seq[core.Fact]) error {
	header := fmt.Sprintf("=== %s ===", d.title)
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for f := range facts {
		fmt.Fprintf(&b, "%*s: %s\n", d.width, f.Address, d.Format(f))
	}
	b.WriteString(strings.Repeat("=", len(header)))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func unknownLabel(v any) string {
	return fmt.Sprintf("<unknown %T>", v)
}
