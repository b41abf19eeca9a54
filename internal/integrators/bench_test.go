package integrators

import (
	"testing"

	"github.com/san-kum/dopsim/internal/dynamo"
)

func nbodyLike(x dynamo.TimeVector) dynamo.TimeVector {
	dx := dynamo.Zero(20)
	for i := 0; i < 5; i++ {
		dx.Vec[i*4] = x.Vec[i*4+2]
		dx.Vec[i*4+1] = x.Vec[i*4+3]
		dx.Vec[i*4+2] = -x.Vec[i*4] * 0.1
		dx.Vec[i*4+3] = -x.Vec[i*4+1] * 0.1
	}
	dx.Time = x.Time
	return dx
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler(0.01)
	x := dynamo.FromSlice(0, []float64{1.0, 0.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(harmonic, x, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4(0.01)
	x := dynamo.FromSlice(0, []float64{1.0, 0.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(harmonic, x, 0.01)
	}
}

func BenchmarkDOP54Step(b *testing.B) {
	integrator := NewDOP54(0.01, 0.01, 1e-6, 1.0, 0.9)
	x := dynamo.FromSlice(0, []float64{1.0, 0.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(harmonic, x)
	}
}

func BenchmarkDOP54_NBody5(b *testing.B) {
	integrator := NewDOP54(0.001, 0.001, 1e-6, 1.0, 0.9)
	x := dynamo.Zero(20)
	for i := range x.Vec {
		x.Vec[i] = float64(i) * 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(nbodyLike, x)
	}
}

func BenchmarkRK4_NBody5(b *testing.B) {
	integrator := NewRK4(0.001)
	x := dynamo.Zero(20)
	for i := range x.Vec {
		x.Vec[i] = float64(i) * 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(nbodyLike, x, 0.001)
	}
}
