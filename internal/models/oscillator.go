package models

import (
	"math"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// Oscillator is a set of uncoupled harmonic oscillators. The first half of
// the state holds positions, the second half velocities.
type Oscillator struct {
	Omega float64
}

func NewOscillator(omega float64) *Oscillator {
	return &Oscillator{Omega: omega}
}

func (o *Oscillator) Name() string { return "oscillator" }
func (o *Oscillator) Dim() int     { return 0 }

func (o *Oscillator) Derive(x dynamo.TimeVector) dynamo.TimeVector {
	half := x.Dim() / 2
	dx := dynamo.Zero(x.Dim())
	w2 := o.Omega * o.Omega
	for i := 0; i < half; i++ {
		dx.Vec[i] = x.Vec[half+i]
		dx.Vec[half+i] = -w2 * x.Vec[i]
	}
	dx.Time = x.Time
	return dx
}

// DefaultState displaces every oscillator by 1 with zero velocity. Odd
// dimensions are rounded up.
func (o *Oscillator) DefaultState(dim int) dynamo.TimeVector {
	if dim < 2 {
		dim = 2
	}
	if dim%2 != 0 {
		dim++
	}
	x := dynamo.Zero(dim)
	for i := 0; i < dim/2; i++ {
		x.Vec[i] = 1.0
	}
	return x
}

func (o *Oscillator) Exact(x0 dynamo.TimeVector, t float64) dynamo.TimeVector {
	half := x0.Dim() / 2
	out := dynamo.Zero(x0.Dim())
	sin, cos := math.Sincos(o.Omega * (t - x0.Time))
	for i := 0; i < half; i++ {
		q, p := x0.Vec[i], x0.Vec[half+i]
		out.Vec[i] = q*cos + p/o.Omega*sin
		out.Vec[half+i] = -q*o.Omega*sin + p*cos
	}
	out.Time = t
	return out
}

// Energy returns the total energy per unit mass.
func (o *Oscillator) Energy(x dynamo.TimeVector) float64 {
	half := x.Dim() / 2
	e := 0.0
	for i := 0; i < half; i++ {
		e += 0.5 * (x.Vec[half+i]*x.Vec[half+i] + o.Omega*o.Omega*x.Vec[i]*x.Vec[i])
	}
	return e
}
