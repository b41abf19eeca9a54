package dynamo

import (
	"fmt"
	"math"
)

// TimeVector is a state vector paired with the time it corresponds to.
type TimeVector struct {
	Time float64
	Vec  []float64
}

// Zero returns a zero-filled vector of dimension dim at time 0.
func Zero(dim int) TimeVector {
	return TimeVector{Vec: make([]float64, dim)}
}

// Ones returns a one-filled vector of dimension dim at time 0.
func Ones(dim int) TimeVector {
	v := Zero(dim)
	for i := range v.Vec {
		v.Vec[i] = 1.0
	}
	return v
}

// Harmonic returns the vector (1, 1/2, 1/3, ...) of dimension dim at time 0.
func Harmonic(dim int) TimeVector {
	v := Zero(dim)
	for i := range v.Vec {
		v.Vec[i] = 1.0 / (float64(i) + 1.0)
	}
	return v
}

// FromSlice copies values into a new vector at time t.
func FromSlice(t float64, values []float64) TimeVector {
	v := TimeVector{Time: t, Vec: make([]float64, len(values))}
	copy(v.Vec, values)
	return v
}

func (v TimeVector) Dim() int { return len(v.Vec) }

func (v TimeVector) Clone() TimeVector {
	return FromSlice(v.Time, v.Vec)
}

// Equal reports whether both the time and every component match exactly.
func (v TimeVector) Equal(other TimeVector) bool {
	if v.Time != other.Time || len(v.Vec) != len(other.Vec) {
		return false
	}
	for i := range v.Vec {
		if v.Vec[i] != other.Vec[i] {
			return false
		}
	}
	return true
}

func (v TimeVector) IsValid() bool {
	if math.IsNaN(v.Time) || math.IsInf(v.Time, 0) {
		return false
	}
	for _, x := range v.Vec {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm of the components.
func (v TimeVector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Vec {
		sum += float64(x * x)
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of the components. Time is ignored.
func (v TimeVector) Dot(other TimeVector) float64 {
	sum := 0.0
	for i := range v.Vec {
		sum += float64(v.Vec[i] * other.Vec[i])
	}
	return sum
}

// Add returns v + other. The result keeps v's time.
func (v TimeVector) Add(other TimeVector) TimeVector {
	result := Zero(len(v.Vec))
	for i := range v.Vec {
		result.Vec[i] = v.Vec[i] + other.Vec[i]
	}
	result.Time = v.Time
	return result
}

// Sub returns v - other. The result keeps v's time.
func (v TimeVector) Sub(other TimeVector) TimeVector {
	result := Zero(len(v.Vec))
	for i := range v.Vec {
		result.Vec[i] = v.Vec[i] - other.Vec[i]
	}
	result.Time = v.Time
	return result
}

// Scale returns v * factor, keeping v's time.
func (v TimeVector) Scale(factor float64) TimeVector {
	result := Zero(len(v.Vec))
	for i := range v.Vec {
		result.Vec[i] = v.Vec[i] * factor
	}
	result.Time = v.Time
	return result
}

// Scale returns factor * v, keeping v's time.
func Scale(factor float64, v TimeVector) TimeVector {
	result := Zero(len(v.Vec))
	for i := range v.Vec {
		result.Vec[i] = factor * v.Vec[i]
	}
	result.Time = v.Time
	return result
}

// CheckDim returns ErrDimensionMismatch unless v has dimension dim.
func CheckDim(v TimeVector, dim int) error {
	if len(v.Vec) != dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v.Vec), dim)
	}
	return nil
}

func (v TimeVector) String() string {
	return fmt.Sprintf("t=%.6f %v", v.Time, v.Vec)
}
