package models

import (
	"math"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// Decay is dx/dt = -Rate * x.
type Decay struct {
	Rate float64
}

func NewDecay(rate float64) *Decay {
	return &Decay{Rate: rate}
}

func (d *Decay) Name() string { return "decay" }
func (d *Decay) Dim() int     { return 0 }

func (d *Decay) Derive(x dynamo.TimeVector) dynamo.TimeVector {
	return x.Scale(-d.Rate)
}

func (d *Decay) DefaultState(dim int) dynamo.TimeVector {
	if dim <= 0 {
		dim = 1
	}
	return dynamo.Harmonic(dim)
}

func (d *Decay) Exact(x0 dynamo.TimeVector, t float64) dynamo.TimeVector {
	out := x0.Scale(math.Exp(-d.Rate * (t - x0.Time)))
	out.Time = t
	return out
}
