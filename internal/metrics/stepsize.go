package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// StepSize records the spacing between consecutive observed states. Value
// is the mean spacing.
type StepSize struct {
	name     string
	t0       float64
	last     float64
	spacings []float64
}

func NewStepSize(t0 float64) *StepSize {
	return &StepSize{
		name: "dt_mean",
		t0:   t0,
		last: t0,
	}
}

func (s *StepSize) Name() string { return s.name }

func (s *StepSize) OnStep(x dynamo.TimeVector) {
	s.spacings = append(s.spacings, x.Time-s.last)
	s.last = x.Time
}

func (s *StepSize) Value() float64 {
	if len(s.spacings) == 0 {
		return 0
	}
	return stat.Mean(s.spacings, nil)
}

func (s *StepSize) StdDev() float64 {
	if len(s.spacings) < 2 {
		return 0
	}
	return stat.StdDev(s.spacings, nil)
}

func (s *StepSize) Max() float64 {
	if len(s.spacings) == 0 {
		return 0
	}
	return floats.Max(s.spacings)
}

func (s *StepSize) Count() int { return len(s.spacings) }

func (s *StepSize) Reset() {
	s.last = s.t0
	s.spacings = s.spacings[:0]
}
