package geometry

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Addresses used by the triangle pipeline.
const (
	AddressTriangle      = "input_triangle"
	AddressRules         = "rules_set"
	AddressRightTriangle = "is_right_triangle"
)

const (
	// AngleSum is the sum of the interior angles of a triangle in degrees.
	AngleSum = 180.0
	// Tolerance is the absolute tolerance used for angle comparisons.
	Tolerance = 0.001
	// DefaultRightAngle is the threshold used when no rule overrides it.
	DefaultRightAngle = 90.0
)

// RuleRightAngleThreshold names the rule holding the right-angle threshold.
const RuleRightAngleThreshold = "right_angle_threshold"

// Angle is a degree value plus a known flag. Value is meaningless while
// Known is false.
type Angle struct {
	Value float64
	Known bool
}

// Known returns a known angle of v degrees.
func Known(v float64) Angle { return Angle{Value: v, Known: true} }

// Unknown returns an angle still to be deduced.
func Unknown() Angle { return Angle{} }

// String renders the value with two decimals, or "?" when unknown.
func (a Angle) String() string {
	if !a.Known {
		return "?"
	}
	return strconv.FormatFloat(a.Value, 'f', 2, 64)
}

// Triangle holds the angles at vertices A, B and C in that order.
type Triangle struct {
	Angles [3]Angle
}

// NewTriangle builds a triangle from the angles at A, B and C.
func NewTriangle(a, b, c Angle) Triangle {
	return Triangle{Angles: [3]Angle{a, b, c}}
}

// UnknownCount returns how many angles are not known yet.
func (t Triangle) UnknownCount() int {
	n := 0
	for _, a := range t.Angles {
		if !a.Known {
			n++
		}
	}
	return n
}

// KnownSum returns the sum of the known angles.
func (t Triangle) KnownSum() float64 {
	sum := 0.0
	for _, a := range t.Angles {
		if a.Known {
			sum += a.Value
		}
	}
	return sum
}

// Complete reports whether all angles are known and add up to AngleSum.
func (t Triangle) Complete() bool {
	return t.UnknownCount() == 0 && math.Abs(t.KnownSum()-AngleSum) < Tolerance
}

// String renders the triangle as "Triangle(90.00, 45.00, ?)".
func (t Triangle) String() string {
	parts := make([]string, len(t.Angles))
	for i, a := range t.Angles {
		parts[i] = a.String()
	}
	return "Triangle(" + strings.Join(parts, ", ") + ")"
}

// RulesSet maps rule names to their textual values.
type RulesSet map[string]string

// Float parses the rule key as a float, returning def when it is absent.
func (r RulesSet) Float(key string, def float64) (float64, error) {
	raw, ok := r[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def, fmt.Errorf("rule %s: %w", key, err)
	}
	return v, nil
}

// Clone returns an independent copy so reads from the store cannot change the
// stored rules.
func (r RulesSet) Clone() RulesSet { return maps.Clone(r) }

// String renders the rules sorted by name, e.g.
// "RulesSet{right_angle_threshold=90.0}".
func (r RulesSet) String() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + r[k]
	}
	return "RulesSet{" + strings.Join(parts, ", ") + "}"
}
