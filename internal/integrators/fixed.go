package integrators

import "github.com/san-kum/dopsim/internal/dynamo"

type stepFunc func(f dynamo.Func, x dynamo.TimeVector, dt float64) dynamo.TimeVector

// integrateFixed takes steps of size dt and shortens the last one so the
// result lands on endTime.
func integrateFixed(step stepFunc, obs *observers, dt, endTime float64, f dynamo.Func, x dynamo.TimeVector) dynamo.TimeVector {
	if x.Time >= endTime {
		return x.Clone()
	}

	cur := x
	for cur.Time+dt < endTime {
		cur = step(f, cur, dt)
		obs.notify(cur)
	}
	last := step(f, cur, endTime-cur.Time)
	last.Time = endTime
	obs.notify(last)
	return last
}
