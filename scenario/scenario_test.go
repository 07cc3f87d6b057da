package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msackman/flipmachine"
)

func TestGoldenScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	tables := flipmachine.NewTables()
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)
			require.NotEmpty(t, s.Steps)

			_, err = s.Run(tables, log.NewNopLogger())
			require.NoError(t, err)
		})
	}
}

func TestRunLogsSteps(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "two_head_zero.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	m, err := s.Run(flipmachine.NewTables(), log.NewLogfmtLogger(&buf))
	require.NoError(t, err)
	assert.False(t, m.Get(0))
	assert.True(t, m.Get(1))

	out := buf.String()
	assert.Contains(t, out, `msg="applied step"`)
	assert.Contains(t, out, `op="set(0, true)"`)
	assert.Contains(t, out, `scenario="two variables, [0 1] true"`)
}

func TestRunMismatch(t *testing.T) {
	s, err := Parse([]byte(`
name: wrong
variables: 2
initial: [[0, 1]]
steps:
  - {op: set, variable: 0, value: true, expect: [true, true]}
  - {op: flip, variable: 1, expect: [true, true]}
`))
	require.NoError(t, err)

	m, err := s.Run(flipmachine.NewTables(), log.NewNopLogger())
	require.Error(t, err)
	mismatch, ok := err.(*MismatchError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, 1, mismatch.Step)
	assert.Equal(t, "flip(1)", mismatch.Op)
	assert.Equal(t, "[true true]", mismatch.Want)
	assert.Equal(t, "[true false]", mismatch.Got)
	require.NotNil(t, m)
	assert.False(t, m.Get(1))
}

func TestRunExpectTrueMismatch(t *testing.T) {
	s, err := Parse([]byte(`
name: whole machine
variables: 2
steps:
  - op: flip
    variable: 0
    expect_true: [[0], [1]]
`))
	require.NoError(t, err)

	_, err = s.Run(flipmachine.NewTables(), log.NewNopLogger())
	mismatch, ok := err.(*MismatchError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, "{[0]:true [1]:true [0 1]:false [1 0]:false}", mismatch.Want)
	assert.Equal(t, "{[0]:true [1]:false [0 1]:false [1 0]:false}", mismatch.Got)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
name: typo
variables: 2
stpes: []
`))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestLoadDefaultsName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anonymous.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variables: 1\nsteps: [{op: flip, variable: 0, expect: [true]}]\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)
}

func TestValidate(t *testing.T) {
	tables := flipmachine.NewTables()
	yes := true
	zero, one, two := 0, 1, 2

	tests := []struct {
		name     string
		scenario Scenario
		errMsg   string
	}{
		{
			name:     "valid",
			scenario: Scenario{Variables: 2, Initial: []flipmachine.Term{{1, 0}}, Steps: []Step{{Op: OpFlip, Variable: &one}}},
		},
		{
			name:     "unknown term",
			scenario: Scenario{Variables: 2, Initial: []flipmachine.Term{{0, 0}}},
			errMsg:   "[0 0] is not a term over 2 variables",
		},
		{
			name:     "term out of range",
			scenario: Scenario{Variables: 2, Initial: []flipmachine.Term{{2}}},
			errMsg:   "[2] is not a term over 2 variables",
		},
		{
			name:     "duplicate term",
			scenario: Scenario{Variables: 2, Initial: []flipmachine.Term{{0, 1}, {0, 1}}},
			errMsg:   "[0 1] listed twice",
		},
		{
			name:     "unknown op",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: "toggle"}}},
			errMsg:   `unknown op "toggle"`,
		},
		{
			name:     "set without value",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: OpSet}}},
			errMsg:   "set requires a value",
		},
		{
			name:     "flip with value",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: OpFlip, Value: &yes}}},
			errMsg:   "flip does not take a value",
		},
		{
			name:     "missing variable",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: OpSet, Value: &yes}}},
			errMsg:   "missing variable",
		},
		{
			name:     "variable out of range",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: OpFlip, Variable: &two}}},
			errMsg:   "variable 2 out of range [0, 2)",
		},
		{
			name:     "short expect",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: OpFlip, Variable: &zero, Expect: []bool{true}}}},
			errMsg:   "expect has 1 values, want 2",
		},
		{
			name:     "bad expect_true",
			scenario: Scenario{Variables: 2, Steps: []Step{{Op: OpFlip, Variable: &zero, ExpectTrue: []flipmachine.Term{{0, 1, 2}}}}},
			errMsg:   "expect_true",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.scenario.Validate(tables.For(tc.scenario.Variables))
			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestValidateTableMismatch(t *testing.T) {
	s := &Scenario{Name: "n", Variables: 2}
	err := s.Validate(flipmachine.NewTables().For(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 2 variables, table has 3")
}

func TestRunNegativeVariables(t *testing.T) {
	s := &Scenario{Name: "negative", Variables: -1}
	_, err := s.Run(flipmachine.NewTables(), log.NewNopLogger())
	require.Error(t, err)
}

func TestInitialMachine(t *testing.T) {
	s := &Scenario{Variables: 2, Initial: []flipmachine.Term{{1}, {1, 0}}}
	m := s.Machine(flipmachine.NewTables().For(2))
	assert.Equal(t, []bool{false, true, false, true}, m.Values())
}

func TestParseMissingVariable(t *testing.T) {
	s, err := Parse([]byte(`
name: no variable
variables: 2
steps:
  - {op: flip, expect: [true, false]}
`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 1)
	assert.Nil(t, s.Steps[0].Variable)
	assert.Equal(t, "flip(?)", s.Steps[0].String())

	_, err = s.Run(flipmachine.NewTables(), log.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "no variable": step 0: missing variable`)
}

func TestParseVariableZero(t *testing.T) {
	s, err := Parse([]byte("variables: 1\nsteps: [{op: set, variable: 0, value: true, expect: [true]}]\n"))
	require.NoError(t, err)
	require.NotNil(t, s.Steps[0].Variable)
	assert.Equal(t, 0, *s.Steps[0].Variable)
	assert.Equal(t, "set(0, true)", s.Steps[0].String())

	m, err := s.Run(flipmachine.NewTables(), log.NewNopLogger())
	require.NoError(t, err)
	assert.True(t, m.Get(0))
}
