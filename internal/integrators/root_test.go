package integrators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNthRootExactPowers(t *testing.T) {
	assert.Equal(t, 2.0, nthRoot(32, 5))
	assert.Equal(t, 0.5, nthRoot(1.0/32, 5))
	assert.Equal(t, 3.0, nthRoot(81, 4))
	assert.Equal(t, 1.0, nthRoot(1, 5))
	assert.InDelta(t, 1e-2, nthRoot(1e-10, 5), 1e-17)
}

func TestNthRootIsCorrectlyRounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		x := math.Ldexp(1+rng.Float64(), rng.Intn(80)-60)
		y := nthRoot(x, 5)

		// x must fall between the fifth powers of the midpoints around y.
		lo := midpoint(math.Nextafter(y, 0), y)
		hi := midpoint(y, math.Nextafter(y, math.Inf(1)))
		assert.LessOrEqual(t, cmpPow(lo, 5, x), 0, "x=%v y=%v", x, y)
		assert.GreaterOrEqual(t, cmpPow(hi, 5, x), 0, "x=%v y=%v", x, y)
	}
}

func TestNthRootEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, nthRoot(0, 5))
	assert.True(t, math.IsNaN(nthRoot(-1, 5)))
	assert.True(t, math.IsInf(nthRoot(math.Inf(1), 5), 1))
}

func TestControlFactor(t *testing.T) {
	assert.Equal(t, nthRoot(0.37, 5), controlFactor(0.37, 5))
	assert.Equal(t, math.Pow(0.37, 1/4.5), controlFactor(0.37, 4.5))
	assert.Equal(t, 0.1, controlFactor(1e-3, 3))
}
