package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/blackboard/agent"
	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/geometry"
)

var (
	// ErrInvalid is returned for scenario files that cannot describe a run.
	ErrInvalid = errors.New("invalid scenario")
	// ErrExpectation is returned by Check when the run differs from the
	// scenario's expectations.
	ErrExpectation = errors.New("expectation not met")
)

// Outcome labels accepted in expect.outcome.
const (
	OutcomeOk    = "ok"
	OutcomeError = "error"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Scenario defines the initial facts of one pipeline run.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario shows.
	Description string `yaml:"description,omitempty"`

	// Triangle lists the angles at A, B and C; null entries are unknown.
	Triangle []*float64 `yaml:"triangle"`

	// Rules is stored as a geometry.RulesSet when present.
	Rules map[string]string `yaml:"rules,omitempty"`

	// Expect is optional; without it every outcome is accepted.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation describes the expected result of a run.
type Expectation struct {
	// Outcome is "ok" or "error".
	Outcome string `yaml:"outcome,omitempty"`

	// RightAngled is the expected is_right_triangle fact. It is only checked
	// for successful runs.
	RightAngled *bool `yaml:"right_angled,omitempty"`

	// Angles are the expected final angles at A, B and C.
	Angles []float64 `yaml:"angles,omitempty"`
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scenario file.
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadAll reads every file in order and stops at the first error.
func LoadAll(filenames []string) ([]*Scenario, error) {
	out := make([]*Scenario, 0, len(filenames))
	for _, f := range filenames {
		s, err := Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Builtin returns the demo scenarios shipped with the binary, ordered by
// file name.
func Builtin() ([]*Scenario, error) {
	names, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	out := make([]*Scenario, 0, len(names))
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Validate checks the structural rules of a scenario.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if len(s.Triangle) != 3 {
		return fmt.Errorf("%w: %s: triangle needs 3 angles, got %d", ErrInvalid, s.Name, len(s.Triangle))
	}
	if e := s.Expect; e != nil {
		switch e.Outcome {
		case "", OutcomeOk, OutcomeError:
		default:
			return fmt.Errorf("%w: %s: unknown outcome %q", ErrInvalid, s.Name, e.Outcome)
		}
		if len(e.Angles) != 0 && len(e.Angles) != 3 {
			return fmt.Errorf("%w: %s: expected angles need 3 values, got %d", ErrInvalid, s.Name, len(e.Angles))
		}
	}
	return nil
}

// TriangleValue converts the angle list into a geometry.Triangle.
func (s *Scenario) TriangleValue() geometry.Triangle {
	var t geometry.Triangle
	for i, v := range s.Triangle {
		if i >= len(t.Angles) {
			break
		}
		if v != nil {
			t.Angles[i] = geometry.Known(*v)
		}
	}
	return t
}

// Seed stores the scenario's triangle and, when present, its rules.
// Facts already in m at other addresses are left alone.
func (s *Scenario) Seed(m core.MemoryStore) {
	core.Store(m, geometry.AddressTriangle, s.TriangleValue())
	if s.Rules != nil {
		rules := make(geometry.RulesSet, len(s.Rules))
		for k, v := range s.Rules {
			rules[k] = v
		}
		core.Store(m, geometry.AddressRules, rules)
	}
}

// Check compares a finished run with the expectations. It returns nil when
// the scenario has none.
func (s *Scenario) Check(rep *agent.Report, m core.MemoryStore) error {
	e := s.Expect
	if e == nil {
		return nil
	}
	var errs []error

	got := OutcomeOk
	if rep.Outcome() != core.OutcomeOk {
		got = OutcomeError
	}
	if e.Outcome != "" && e.Outcome != got {
		errs = append(errs, fmt.Errorf("outcome %s, want %s", got, e.Outcome))
	}

	if e.RightAngled != nil && got == OutcomeOk {
		right, err := core.Get[bool](m, geometry.AddressRightTriangle)
		switch {
		case err != nil:
			errs = append(errs, err)
		case right != *e.RightAngled:
			errs = append(errs, fmt.Errorf("right_angled %t, want %t", right, *e.RightAngled))
		}
	}

	if len(e.Angles) == 3 {
		t, err := core.Get[geometry.Triangle](m, geometry.AddressTriangle)
		if err != nil {
			errs = append(errs, err)
		} else {
			for i, want := range e.Angles {
				a := t.Angles[i]
				if !a.Known || math.Abs(a.Value-want) >= geometry.Tolerance {
					errs = append(errs, fmt.Errorf("angle %d is %s, want %.2f", i, a, want))
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrExpectation, s.Name, errors.Join(errs...))
}
