package integrators

import "github.com/san-kum/dopsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method with a fixed step size.
type RK4 struct {
	observers
	dt      float64
	steps   int
	scratch dynamo.TimeVector
}

func NewRK4(dt float64) *RK4 {
	return &RK4{dt: dt}
}

func (r *RK4) ensureScratch(n int) {
	if r.scratch.Dim() != n {
		r.scratch = dynamo.Zero(n)
	}
}

func (r *RK4) Step(f dynamo.Func, x dynamo.TimeVector, dt float64) dynamo.TimeVector {
	n := x.Dim()
	r.ensureScratch(n)

	k1 := f(x)

	for i := 0; i < n; i++ {
		r.scratch.Vec[i] = x.Vec[i] + dt*0.5*k1.Vec[i]
	}
	r.scratch.Time = x.Time + dt*0.5
	k2 := f(r.scratch).Clone()

	for i := 0; i < n; i++ {
		r.scratch.Vec[i] = x.Vec[i] + dt*0.5*k2.Vec[i]
	}
	k3 := f(r.scratch).Clone()

	for i := 0; i < n; i++ {
		r.scratch.Vec[i] = x.Vec[i] + dt*k3.Vec[i]
	}
	r.scratch.Time = x.Time + dt
	k4 := f(r.scratch)

	result := dynamo.Zero(n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result.Vec[i] = x.Vec[i] + dt6*(k1.Vec[i]+2*k2.Vec[i]+2*k3.Vec[i]+k4.Vec[i])
	}
	result.Time = x.Time + dt
	r.steps++

	return result
}

func (r *RK4) IntegrateTo(endTime float64, f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	return integrateFixed(r.Step, &r.observers, r.dt, endTime, f, x)
}

func (r *RK4) DeltaT() float64 { return r.dt }
func (r *RK4) Steps() int      { return r.steps }
func (r *RK4) Rejections() int { return 0 }
