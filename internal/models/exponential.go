package models

import (
	"math"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// Exponential is dx/dt = x, the growth law whose solution at t=1 from ones
// is e in every component.
type Exponential struct{}

func NewExponential() *Exponential {
	return &Exponential{}
}

func (e *Exponential) Name() string { return "exp" }
func (e *Exponential) Dim() int     { return 0 }

func (e *Exponential) Derive(x dynamo.TimeVector) dynamo.TimeVector {
	return x.Clone()
}

func (e *Exponential) DefaultState(dim int) dynamo.TimeVector {
	if dim <= 0 {
		dim = 1
	}
	return dynamo.Ones(dim)
}

func (e *Exponential) Exact(x0 dynamo.TimeVector, t float64) dynamo.TimeVector {
	out := x0.Scale(math.Exp(t - x0.Time))
	out.Time = t
	return out
}
