// Package vectormath provides the vector operations behind embedding
// comparison: dot product, magnitudes, distance metrics and L2
// normalization. All functions are pure and allocation-free except
// NormalizeL2, which returns a new slice.
package vectormath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch is returned when two vectors differ in length.
	ErrDimensionMismatch = errors.New("vector dimensions do not match")
	// ErrEmptyVector is returned for zero-length vectors.
	ErrEmptyVector = errors.New("vector is empty")
	// ErrZeroVector is returned when a vector with zero magnitude is used
	// where a direction is required.
	ErrZeroVector = errors.New("vector has zero magnitude")
	// ErrNonFiniteVector is returned when NaN or Inf elements make a
	// similarity undefined.
	ErrNonFiniteVector = errors.New("vector contains non-finite values")
)

func checkPair(a, b []float32) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyVector
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	return nil
}

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float32) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}

// Magnitude returns the Euclidean norm of a vector.
func Magnitude(a []float32) float64 {
	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two vectors, clamped to [-1, 1]
// to absorb floating-point rounding.
func Cosine(a, b []float32) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}

	magA := Magnitude(a)
	magB := Magnitude(b)
	if magA == 0 || magB == 0 {
		return 0, ErrZeroVector
	}

	dot, err := Dot(a, b)
	if err != nil {
		return 0, err
	}

	sim := dot / (magA * magB)
	// NaN survives clamp's comparisons, so a poisoned input would leak an
	// out-of-range similarity without this check.
	if math.IsNaN(sim) {
		return 0, ErrNonFiniteVector
	}
	return clamp(sim, -1, 1), nil
}

// Euclidean returns the Euclidean (L2) distance between two vectors.
func Euclidean(a, b []float32) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Manhattan returns the Manhattan (L1) distance between two vectors.
func Manhattan(a, b []float32) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum, nil
}

// EuclideanSimilarity maps Euclidean distance to a [0,1] similarity
// assuming unit-normalized inputs, whose maximum distance is sqrt(2*len).
func EuclideanSimilarity(a, b []float32) (float64, error) {
	d, err := Euclidean(a, b)
	if err != nil {
		return 0, err
	}
	maxDist := math.Sqrt(2 * float64(len(a)))
	return clamp(1-d/maxDist, 0, 1), nil
}

// ManhattanSimilarity maps Manhattan distance to a [0,1] similarity
// assuming unit-normalized inputs, whose maximum distance is 2*len.
func ManhattanSimilarity(a, b []float32) (float64, error) {
	d, err := Manhattan(a, b)
	if err != nil {
		return 0, err
	}
	return clamp(1-d/(2*float64(len(a))), 0, 1), nil
}

// NormalizeL2 returns a copy of v scaled to unit Euclidean norm.
// Normalizing an already-unit vector returns the same values.
func NormalizeL2(v []float32) ([]float32, error) {
	if len(v) == 0 {
		return nil, ErrEmptyVector
	}
	mag := Magnitude(v)
	if mag == 0 {
		return nil, ErrZeroVector
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / mag)
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
