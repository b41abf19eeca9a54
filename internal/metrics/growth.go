package metrics

import "github.com/san-kum/dopsim/internal/dynamo"

// Growth is the ratio of the latest state's norm to the initial norm.
type Growth struct {
	name    string
	initial float64
	current float64
}

func NewGrowth(x0 dynamo.TimeVector) *Growth {
	return &Growth{
		name:    "growth",
		initial: x0.Norm(),
		current: x0.Norm(),
	}
}

func (g *Growth) Name() string { return g.name }

func (g *Growth) OnStep(x dynamo.TimeVector) {
	g.current = x.Norm()
}

func (g *Growth) Value() float64 {
	if g.initial == 0 {
		return 0
	}
	return g.current / g.initial
}

func (g *Growth) Reset() {
	g.current = g.initial
}
