package models

import (
	"math"
	"testing"

	"github.com/san-kum/dopsim/internal/dynamo"
)

func TestExponentialIsIdentity(t *testing.T) {
	e := NewExponential()
	x := dynamo.FromSlice(0.5, []float64{1, -2, 3})

	dx := e.Derive(x)
	if !dx.Equal(x) {
		t.Errorf("expected derivative equal to state, got %v", dx)
	}

	dx.Vec[0] = 42
	if x.Vec[0] != 1 {
		t.Error("Derive must not alias its input")
	}
}

func TestExponentialExact(t *testing.T) {
	e := NewExponential()
	got := e.Exact(dynamo.Ones(2), 1.0)

	if got.Time != 1.0 {
		t.Errorf("expected time 1.0, got %f", got.Time)
	}
	if math.Abs(got.Vec[1]-math.E) > 1e-15 {
		t.Errorf("expected e, got %.16f", got.Vec[1])
	}
}

func TestDecayDerivative(t *testing.T) {
	d := NewDecay(2.0)
	dx := d.Derive(dynamo.FromSlice(0, []float64{1, 0.5}))

	if dx.Vec[0] != -2.0 || dx.Vec[1] != -1.0 {
		t.Errorf("unexpected derivative %v", dx.Vec)
	}

	x := d.Exact(dynamo.Ones(1), 1.0)
	if math.Abs(x.Vec[0]-math.Exp(-2.0)) > 1e-15 {
		t.Errorf("expected exp(-2), got %f", x.Vec[0])
	}
}

func TestOscillatorEquilibrium(t *testing.T) {
	o := NewOscillator(1.0)
	dx := o.Derive(dynamo.Zero(2))

	if dx.Norm() != 0 {
		t.Errorf("expected zero derivative at equilibrium, got %v", dx.Vec)
	}
}

func TestOscillatorDerivative(t *testing.T) {
	o := NewOscillator(2.0)
	dx := o.Derive(dynamo.FromSlice(0, []float64{1, 3}))

	if dx.Vec[0] != 3 {
		t.Errorf("expected velocity 3, got %f", dx.Vec[0])
	}
	if dx.Vec[1] != -4 {
		t.Errorf("expected acceleration -4, got %f", dx.Vec[1])
	}
}

func TestOscillatorDefaultStateIsEven(t *testing.T) {
	o := NewOscillator(1.0)
	for _, dim := range []int{0, 1, 2, 5} {
		if got := o.DefaultState(dim).Dim(); got%2 != 0 || got < 2 {
			t.Errorf("dim %d: expected even dimension >= 2, got %d", dim, got)
		}
	}
}

func TestOscillatorExactConservesEnergy(t *testing.T) {
	o := NewOscillator(1.5)
	x0 := dynamo.FromSlice(0, []float64{1, 0.3})
	e0 := o.Energy(x0)

	for _, tt := range []float64{0.1, 1.0, 7.3} {
		if e := o.Energy(o.Exact(x0, tt)); math.Abs(e-e0) > 1e-12 {
			t.Errorf("t=%.1f: energy %f, want %f", tt, e, e0)
		}
	}
}
