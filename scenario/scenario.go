// Package scenario loads and runs scripted traces against a
// flipmachine.Machine. A scenario names the terms which start out
// true, then lists operations to apply, each optionally followed by
// the state the machine must then be in. Scenarios are written in
// YAML:
//
//	name: two variables, [0 1] true
//	variables: 2
//	initial:
//	  - [0, 1]
//	steps:
//	  - op: set
//	    variable: 0
//	    value: true
//	    expect: [true, true]
//
// Every step must name its variable. expect lists Get(v) for every
// variable. expect_true lists exactly
// the terms which must be true; every other term must be false.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/msackman/flipmachine"
)

const (
	OpSet  = "set"
	OpFlip = "flip"
)

type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Variables   int                `yaml:"variables"`
	Initial     []flipmachine.Term `yaml:"initial,omitempty"`
	Steps       []Step             `yaml:"steps"`
}

type Step struct {
	Op         string             `yaml:"op"`
	Variable   *int               `yaml:"variable"`
	Value      *bool              `yaml:"value,omitempty"`
	Expect     []bool             `yaml:"expect,omitempty"`
	ExpectTrue []flipmachine.Term `yaml:"expect_true,omitempty"`
}

func (s Step) String() string {
	variable := "?"
	if s.Variable != nil {
		variable = strconv.Itoa(*s.Variable)
	}
	if s.Op == OpSet && s.Value != nil {
		return fmt.Sprintf("set(%s, %t)", variable, *s.Value)
	}
	return fmt.Sprintf("%s(%s)", s.Op, variable)
}

// Parse decodes a single scenario. Unknown fields are an error.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "decoding scenario")
	}
	return s, nil
}

// Load reads and parses the scenario in the named file. If the
// scenario has no name, the file name is used.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading scenario %s", path)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks the scenario against the table for its variables:
// every term must exist, no initial term may be listed twice, and
// every step must be well formed.
func (s *Scenario) Validate(t *flipmachine.Table) error {
	if t.Variables() != s.Variables {
		return errors.Errorf("scenario %q has %d variables, table has %d", s.Name, s.Variables, t.Variables())
	}
	if err := checkTerms(t, s.Initial); err != nil {
		return errors.Wrapf(err, "scenario %q: initial terms", s.Name)
	}
	for idx, step := range s.Steps {
		if err := step.validate(t); err != nil {
			return errors.Wrapf(err, "scenario %q: step %d", s.Name, idx)
		}
	}
	return nil
}

func (s Step) validate(t *flipmachine.Table) error {
	switch s.Op {
	case OpSet:
		if s.Value == nil {
			return errors.New("set requires a value")
		}
	case OpFlip:
		if s.Value != nil {
			return errors.New("flip does not take a value")
		}
	default:
		return errors.Errorf("unknown op %q", s.Op)
	}
	if s.Variable == nil {
		return errors.New("missing variable")
	}
	if v := *s.Variable; v < 0 || v >= t.Variables() {
		return errors.Errorf("variable %d out of range [0, %d)", v, t.Variables())
	}
	if s.Expect != nil && len(s.Expect) != t.Variables() {
		return errors.Errorf("expect has %d values, want %d", len(s.Expect), t.Variables())
	}
	return errors.Wrap(checkTerms(t, s.ExpectTrue), "expect_true")
}

func checkTerms(t *flipmachine.Table, terms []flipmachine.Term) error {
	seen := make(map[int]bool, len(terms))
	for _, term := range terms {
		idx, found := t.Lookup(term)
		if !found {
			return errors.Errorf("%v is not a term over %d variables", term, t.Variables())
		}
		if seen[idx] {
			return errors.Errorf("%v listed twice", term)
		}
		seen[idx] = true
	}
	return nil
}

// Machine builds the scenario's initial machine: the listed terms are
// true, every other term is false. The scenario must be valid for t.
func (s *Scenario) Machine(t *flipmachine.Table) *flipmachine.Machine {
	return t.NewMachine(trueTerms(t, s.Initial))
}

// trueTerms returns a Producer which is true for exactly the given
// terms.
func trueTerms(t *flipmachine.Table, terms []flipmachine.Term) flipmachine.Producer {
	set := make(map[int]bool, len(terms))
	for _, term := range terms {
		set[t.Index(term)] = true
	}
	return func(term flipmachine.Term) bool {
		return set[t.Index(term)]
	}
}
