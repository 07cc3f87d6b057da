package scenario

import (
	"fmt"
	"slices"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/msackman/flipmachine"
)

// MismatchError reports the first step after which the machine was
// not in the expected state.
type MismatchError struct {
	Scenario string
	Step     int
	Op       string
	Want     string
	Got      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("scenario %q: after step %d (%s): want %s, got %s", e.Scenario, e.Step, e.Op, e.Want, e.Got)
}

// Run validates the scenario, builds its initial machine from tables
// and applies every step, checking expectations as it goes. It
// returns the final machine, and a *MismatchError for the first
// failed expectation.
func (s *Scenario) Run(tables *flipmachine.Tables, logger log.Logger) (*flipmachine.Machine, error) {
	if s.Variables < 0 {
		return nil, errors.Errorf("scenario %q: negative variables %d", s.Name, s.Variables)
	}
	t := tables.For(s.Variables)
	if err := s.Validate(t); err != nil {
		return nil, err
	}
	logger = log.With(logger, "scenario", s.Name)

	m := s.Machine(t)
	level.Debug(logger).Log("msg", "initial machine", "machine", m)
	for idx, step := range s.Steps {
		switch step.Op {
		case OpSet:
			m.Set(*step.Variable, *step.Value)
		case OpFlip:
			m.Flip(*step.Variable)
		}
		level.Debug(logger).Log("msg", "applied step", "step", idx, "op", step, "machine", m)

		if step.Expect != nil {
			got := make([]bool, t.Variables())
			for v := range got {
				got[v] = m.Get(v)
			}
			if !slices.Equal(step.Expect, got) {
				return m, &MismatchError{Scenario: s.Name, Step: idx, Op: step.String(),
					Want: fmt.Sprint(step.Expect), Got: fmt.Sprint(got)}
			}
		}
		if step.ExpectTrue != nil {
			want := t.NewMachine(trueTerms(t, step.ExpectTrue))
			if !want.Equal(m) {
				return m, &MismatchError{Scenario: s.Name, Step: idx, Op: step.String(),
					Want: want.String(), Got: m.String()}
			}
		}
	}
	return m, nil
}
