package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/geometry"
	"github.com/hupe1980/blackboard/memory"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
name: sample
triangle: [90, 45.5, null]
rules:
  right_angle_threshold: "90.0"
expect:
  outcome: ok
  right_angled: true
`))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Triangle, 3)
	assert.Nil(t, s.Triangle[2])
	assert.Equal(t, geometry.NewTriangle(geometry.Known(90), geometry.Known(45.5), geometry.Unknown()), s.TriangleValue())
	assert.Equal(t, "90.0", s.Rules[geometry.RuleRightAngleThreshold])
	require.NotNil(t, s.Expect.RightAngled)
	assert.True(t, *s.Expect.RightAngled)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "name: [unterminated"},
		{"no name", "triangle: [1, 2, 3]"},
		{"short triangle", "name: x\ntriangle: [1, 2]"},
		{"bad outcome", "name: x\ntriangle: [1, 2, null]\nexpect:\n  outcome: maybe"},
		{"bad angles", "name: x\ntriangle: [1, 2, null]\nexpect:\n  angles: [1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "ambiguous.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ambiguous", s.Name)
	assert.Equal(t, 2, s.TriangleValue().UnknownCount())

	_, err = Load(filepath.Join("testdata", "bad_triangle.yaml"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "bad_triangle.yaml")

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadAll([]string{filepath.Join("testdata", "ambiguous.yaml"), filepath.Join("testdata", "bad_triangle.yaml")})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBuiltin(t *testing.T) {
	all, err := Builtin()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "right-angled", all[0].Name)
	assert.Equal(t, "not-right-angled", all[1].Name)
}

func TestBuiltin_RunAndCheck(t *testing.T) {
	all, err := Builtin()
	require.NoError(t, err)

	for _, s := range all {
		t.Run(s.Name, func(t *testing.T) {
			m := memory.NewInMemoryStore()
			s.Seed(m)

			rep := geometry.NewTriangleProcessing(nil).Run(m)

			require.NoError(t, rep.Err)
			assert.NoError(t, s.Check(rep, m))
		})
	}
}

func TestSeed(t *testing.T) {
	m := memory.NewInMemoryStore()
	s := &Scenario{Name: "x", Triangle: []*float64{ptr(60), nil, ptr(60)}, Rules: map[string]string{"k": "v"}}
	s.Seed(m)

	tri, err := core.Get[geometry.Triangle](m, geometry.AddressTriangle)
	require.NoError(t, err)
	assert.Equal(t, 1, tri.UnknownCount())

	rules, err := core.Get[geometry.RulesSet](m, geometry.AddressRules)
	require.NoError(t, err)
	assert.Equal(t, geometry.RulesSet{"k": "v"}, rules)

	// rules are copied, not aliased
	s.Rules["k"] = "changed"
	rules, _ = core.Get[geometry.RulesSet](m, geometry.AddressRules)
	assert.Equal(t, "v", rules["k"])

	// a scenario without rules leaves an existing rules fact alone
	(&Scenario{Name: "y", Triangle: []*float64{nil, ptr(1), ptr(2)}}).Seed(m)
	assert.True(t, core.Has(m, geometry.AddressRules))
}

func TestCheck_Mismatches(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "ambiguous.yaml"))
	require.NoError(t, err)

	m := memory.NewInMemoryStore()
	s.Seed(m)
	rep := geometry.NewTriangleProcessing(nil).Run(m)
	assert.NoError(t, s.Check(rep, m), "error outcome was expected")

	s.Expect.Outcome = OutcomeOk
	err = s.Check(rep, m)
	assert.ErrorIs(t, err, ErrExpectation)
	assert.Contains(t, err.Error(), "outcome error, want ok")
}

func TestCheck_WrongVerdictAndAngles(t *testing.T) {
	right := true
	s := &Scenario{
		Name:     "wrong",
		Triangle: []*float64{ptr(60), ptr(60), nil},
		Expect:   &Expectation{Outcome: OutcomeOk, RightAngled: &right, Angles: []float64{60, 60, 61}},
	}
	m := memory.NewInMemoryStore()
	s.Seed(m)
	rep := geometry.NewTriangleProcessing(nil).Run(m)

	err := s.Check(rep, m)
	require.ErrorIs(t, err, ErrExpectation)
	assert.Contains(t, err.Error(), "right_angled false, want true")
	assert.Contains(t, err.Error(), "angle 2 is 60.00, want 61.00")

	assert.NoError(t, (&Scenario{Name: "none"}).Check(rep, m))
}

func ptr(v float64) *float64 { return &v }
