package dynamo

import (
	"fmt"
	"time"
)

// Func is the right-hand side of dX/dt = f(X). It must return a vector of the
// same dimension as its input and must not modify its argument.
type Func func(x TimeVector) TimeVector

type System interface {
	Name() string
	Derive(x TimeVector) TimeVector
	// Dim returns the required state dimension, or 0 when any dimension works.
	Dim() int
	DefaultState(dim int) TimeVector
}

// Analytic is implemented by systems with a closed-form solution.
type Analytic interface {
	Exact(x0 TimeVector, t float64) TimeVector
}

type Integrator interface {
	// IntegrateTo advances x to endTime and returns the state at endTime.
	IntegrateTo(endTime float64, f Func, x TimeVector) TimeVector
	DeltaT() float64
	Steps() int
	Rejections() int
	AddObserver(o Observer)
}

type Observer interface {
	OnStep(x TimeVector)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(x TimeVector)

func (f ObserverFunc) OnStep(x TimeVector) { f(x) }

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Result struct {
	States     []TimeVector
	Metrics    map[string]float64
	Steps      int
	Rejections int
	FinalDt    float64
	Elapsed    time.Duration
}

// Final returns the last recorded state.
func (r *Result) Final() TimeVector {
	if len(r.States) == 0 {
		return TimeVector{}
	}
	return r.States[len(r.States)-1]
}

func (r *Result) Times() []float64 {
	times := make([]float64, len(r.States))
	for i, s := range r.States {
		times[i] = s.Time
	}
	return times
}

// Component returns the history of component idx across all recorded states.
func (r *Result) Component(idx int) []float64 {
	out := make([]float64, 0, len(r.States))
	for _, s := range r.States {
		if idx < len(s.Vec) {
			out = append(out, s.Vec[idx])
		}
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

// Hamiltonian is implemented by systems with a conserved energy.
type Hamiltonian interface {
	Energy(x TimeVector) float64
}
