package integrators

import (
	"math"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// DOP54 is an adaptive Dormand-Prince 5(4) integrator. The step size and
// counters are mutated by every Step call; a DOP54 must not be shared
// between goroutines.
type DOP54 struct {
	observers

	tab    Tableau
	dt     float64
	dtMax  float64
	absTol float64
	growth float64
	shrink float64

	steps      int
	rejections int
	lastErr    float64
}

// NewDOP54 returns an integrator starting at step size dt. Accepted steps
// multiply dt by growth (capped at dtMax); rejected steps scale it by shrink
// and the error ratio. An initial dt above dtMax is clamped.
func NewDOP54(dt, dtMax, absTol, growth, shrink float64) *DOP54 {
	return &DOP54{
		tab:    DormandPrince(),
		dt:     math.Min(dt, dtMax),
		dtMax:  dtMax,
		absTol: absTol,
		growth: growth,
		shrink: shrink,
	}
}

// stages evaluates k1..k7, each already multiplied by dt.
func (d *DOP54) stages(f dynamo.Func, x dynamo.TimeVector) [7]dynamo.TimeVector {
	var k [7]dynamo.TimeVector
	n := x.Dim()

	k[0] = dynamo.Scale(d.dt, f(x))
	for i := 1; i < 7; i++ {
		row := d.tab.A[i]
		stage := dynamo.Zero(n)
		for e := 0; e < n; e++ {
			// float64() keeps the products unfused so results match across architectures.
			sum := float64(row[0] * k[0].Vec[e])
			for j := 1; j < i; j++ {
				sum += float64(row[j] * k[j].Vec[e])
			}
			stage.Vec[e] = x.Vec[e] + sum
		}
		stage.Time = x.Time + d.tab.C[i]*d.dt
		k[i] = dynamo.Scale(d.dt, f(stage))
	}
	return k
}

func (d *DOP54) combine(x dynamo.TimeVector, k [7]dynamo.TimeVector, b [7]float64) dynamo.TimeVector {
	n := x.Dim()
	out := dynamo.Zero(n)
	for e := 0; e < n; e++ {
		sum := float64(b[0] * k[0].Vec[e])
		for j := 1; j < 7; j++ {
			sum += float64(b[j] * k[j].Vec[e])
		}
		out.Vec[e] = x.Vec[e] + sum
	}
	out.Time = d.dt + x.Time
	return out
}

// FifthOrder advances x by one fixed step of the current size using the
// fifth-order weights. The integrator state is not modified.
func (d *DOP54) FifthOrder(f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	return d.combine(x, d.stages(f, x), d.tab.High)
}

// FourthOrder is FifthOrder with the embedded fourth-order weights.
func (d *DOP54) FourthOrder(f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	return d.combine(x, d.stages(f, x), d.tab.Low)
}

// Step attempts one adaptive step from x. On acceptance it returns the
// fifth-order state and grows dt for the next call. On rejection it returns
// a copy of x unchanged and shrinks dt; the caller retries from x.
func (d *DOP54) Step(f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	next, _ := d.step(f, x)
	return next
}

func (d *DOP54) step(f dynamo.Func, x dynamo.TimeVector) (dynamo.TimeVector, bool) {
	k := d.stages(f, x)
	high := d.combine(x, k, d.tab.High)
	low := d.combine(x, k, d.tab.Low)

	errEst := high.Sub(low).Norm()
	d.lastErr = errEst
	d.steps++

	if errEst > d.absTol {
		d.dt = d.shrink * d.dt * controlFactor(d.absTol/errEst, d.tab.Order)
		d.rejections++
		return x.Clone(), false
	}

	d.dt *= d.growth
	if d.dt > d.dtMax {
		d.dt = d.dtMax
	}
	return high, true
}

// IntegrateTo steps adaptively from x until endTime. When a step would pass
// endTime it is discarded and replaced by one fixed fifth-order step of
// exactly endTime - t from the last accepted state; afterwards dt is back at
// the size the control law proposed, so a following call continues from it.
// DeltaT afterwards is that proposed size, not the landing step size.
// Observers see every accepted state including the final one.
//
// A derivative that never lets the step be accepted loops forever; bounding
// the run is up to the caller.
func (d *DOP54) IntegrateTo(endTime float64, f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	if x.Time >= endTime {
		return x.Clone()
	}

	prev := x
	for {
		next, accepted := d.step(f, prev)
		if next.Time > endTime {
			proposed := d.dt
			d.dt = endTime - prev.Time
			last := d.FifthOrder(f, prev)
			last.Time = endTime
			d.dt = proposed
			d.notify(last)
			return last
		}
		if accepted {
			d.notify(next)
			if next.Time == endTime {
				return next
			}
		}
		prev = next
	}
}

// SetDeltaT overrides the current step size. Values above the maximum are
// clamped; non-positive values are ignored.
func (d *DOP54) SetDeltaT(dt float64) {
	if dt <= 0 {
		return
	}
	d.dt = math.Min(dt, d.dtMax)
}

func (d *DOP54) DeltaT() float64    { return d.dt }
func (d *DOP54) MaxDeltaT() float64 { return d.dtMax }
func (d *DOP54) Tolerance() float64 { return d.absTol }
func (d *DOP54) Steps() int         { return d.steps }
func (d *DOP54) Rejections() int    { return d.rejections }

// LastError returns the error estimate of the most recent adaptive step.
func (d *DOP54) LastError() float64 { return d.lastErr }

func (d *DOP54) Tableau() Tableau { return d.tab }
