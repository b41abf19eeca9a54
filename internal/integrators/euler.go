package integrators

import "github.com/san-kum/dopsim/internal/dynamo"

// Euler is the explicit first-order method with a fixed step size.
type Euler struct {
	observers
	dt    float64
	steps int
}

func NewEuler(dt float64) *Euler {
	return &Euler{dt: dt}
}

func (e *Euler) Step(f dynamo.Func, x dynamo.TimeVector, dt float64) dynamo.TimeVector {
	dx := f(x)
	result := dynamo.Zero(x.Dim())
	for i := range x.Vec {
		result.Vec[i] = x.Vec[i] + dt*dx.Vec[i]
	}
	result.Time = x.Time + dt
	e.steps++
	return result
}

func (e *Euler) IntegrateTo(endTime float64, f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	return integrateFixed(e.Step, &e.observers, e.dt, endTime, f, x)
}

func (e *Euler) DeltaT() float64 { return e.dt }
func (e *Euler) Steps() int      { return e.steps }
func (e *Euler) Rejections() int { return 0 }
