package metrics

import (
	"math"

	"github.com/san-kum/dopsim/internal/dynamo"
)

// Bounded reports the fraction of accepted states whose components are all
// finite and no larger than limit in magnitude. It also remembers when the
// trajectory first left that box, which is usually the first sign of an
// unstable step size or a blow-up in the model.
type Bounded struct {
	limit    float64
	escaped  int
	seen     int
	escapeAt float64
}

func NewBounded(limit float64) *Bounded {
	return &Bounded{limit: limit, escapeAt: math.NaN()}
}

func (b *Bounded) Name() string { return "bounded" }

func (b *Bounded) OnStep(x dynamo.TimeVector) {
	b.seen++
	if b.inside(x) {
		return
	}
	if b.escaped == 0 {
		b.escapeAt = x.Time
	}
	b.escaped++
}

func (b *Bounded) inside(x dynamo.TimeVector) bool {
	for _, v := range x.Vec {
		// NaN fails every comparison, so test for containment.
		if !(math.Abs(v) <= b.limit) {
			return false
		}
	}
	return true
}

func (b *Bounded) Value() float64 {
	if b.seen == 0 {
		return 1.0
	}
	return 1.0 - float64(b.escaped)/float64(b.seen)
}

// Escape returns the time of the first state outside the bounds.
func (b *Bounded) Escape() (float64, bool) {
	return b.escapeAt, b.escaped > 0
}

func (b *Bounded) Reset() {
	b.escaped = 0
	b.seen = 0
	b.escapeAt = math.NaN()
}
