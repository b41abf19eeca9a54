package metrics

import (
	"math"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// GlobalError tracks the largest distance between an observed state and the
// closed-form solution at the same time.
type GlobalError struct {
	name   string
	exact  dynamo.Analytic
	x0     dynamo.TimeVector
	maxErr float64
}

func NewGlobalError(exact dynamo.Analytic, x0 dynamo.TimeVector) *GlobalError {
	return &GlobalError{
		name:  "global_error",
		exact: exact,
		x0:    x0.Clone(),
	}
}

func (g *GlobalError) Name() string { return g.name }

func (g *GlobalError) OnStep(x dynamo.TimeVector) {
	ref := g.exact.Exact(g.x0, x.Time)
	g.maxErr = math.Max(g.maxErr, x.Sub(ref).Norm())
}

func (g *GlobalError) Value() float64 { return g.maxErr }

func (g *GlobalError) Reset() { g.maxErr = 0 }
