package integrators

import (
	"math"
	"math/big"
)

// rootPrec is wide enough that the n-th power of a 54-bit midpoint is exact
// for every order a tableau carries.
const rootPrec = 1024

// controlFactor returns ratio^(1/order). Integer orders get a correctly
// rounded root so adaptive runs do not depend on the accuracy of math.Pow.
func controlFactor(ratio, order float64) float64 {
	if n := int(order); float64(n) == order && n >= 1 && n <= 16 {
		return nthRoot(ratio, n)
	}
	return math.Pow(ratio, 1/order)
}

// nthRoot returns x^(1/n) rounded to the nearest float64.
func nthRoot(x float64, n int) float64 {
	y := math.Pow(x, 1/float64(n))
	if n < 1 || !(x > 0) || math.IsInf(x, 0) || y == 0 || math.IsInf(y, 0) {
		return y
	}

	// The root lies above the midpoint to the next float when the midpoint
	// raised to n is still below x, and symmetrically below.
	for {
		up := math.Nextafter(y, math.Inf(1))
		if math.IsInf(up, 0) || cmpPow(midpoint(y, up), n, x) >= 0 {
			break
		}
		y = up
	}
	for {
		down := math.Nextafter(y, 0)
		if down == 0 || cmpPow(midpoint(down, y), n, x) <= 0 {
			break
		}
		y = down
	}
	return y
}

func midpoint(a, b float64) *big.Float {
	m := new(big.Float).SetPrec(rootPrec).SetFloat64(a)
	m.Add(m, new(big.Float).SetPrec(rootPrec).SetFloat64(b))
	return m.SetMantExp(m, -1)
}

// cmpPow compares m^n with x exactly.
func cmpPow(m *big.Float, n int, x float64) int {
	p := new(big.Float).SetPrec(rootPrec).SetInt64(1)
	for i := 0; i < n; i++ {
		p.Mul(p, m)
	}
	return p.Cmp(new(big.Float).SetPrec(rootPrec).SetFloat64(x))
}
