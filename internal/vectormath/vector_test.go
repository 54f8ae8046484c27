package vectormath

import (
	"errors"
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	got, err := Dot([]float32{1, 2, 3}, []float32{4, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 32 {
		t.Errorf("expected 32, got %f", got)
	}
}

func TestDot_Errors(t *testing.T) {
	if _, err := Dot([]float32{1, 2}, []float32{1, 2, 3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if _, err := Dot(nil, []float32{1}); !errors.Is(err, ErrEmptyVector) {
		t.Errorf("expected empty vector error, got %v", err)
	}
}

func TestMagnitude(t *testing.T) {
	if got := Magnitude([]float32{3, 4}); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
	if got := Magnitude(nil); got != 0 {
		t.Errorf("expected 0 for empty vector, got %f", got)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"scaled copies", []float32{1, 2}, []float32{2, 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float32{0.3, -0.5, 0.8, 0.1}
	b := []float32{-0.2, 0.9, 0.4, -0.7}

	ab, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Cosine(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ab != ba {
		t.Errorf("expected symmetry, got %f vs %f", ab, ba)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	if _, err := Cosine([]float32{0, 0}, []float32{1, 2}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected zero vector error, got %v", err)
	}
}

func TestCosine_NonFinite(t *testing.T) {
	nan := float32(math.NaN())

	for _, tc := range [][2][]float32{
		{{nan, 1}, {1, 0}},
		{{1, 0}, {0.5, nan}},
	} {
		sim, err := Cosine(tc[0], tc[1])
		if !errors.Is(err, ErrNonFiniteVector) {
			t.Errorf("Cosine(%v, %v): expected non-finite error, got %v", tc[0], tc[1], err)
		}
		if math.IsNaN(sim) {
			t.Errorf("Cosine(%v, %v): similarity leaked NaN", tc[0], tc[1])
		}
	}
}

func TestEuclidean(t *testing.T) {
	got, err := Euclidean([]float32{0, 0}, []float32{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
}

func TestManhattan(t *testing.T) {
	got, err := Manhattan([]float32{1, -2}, []float32{4, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("expected 7, got %f", got)
	}
}

func TestEuclideanSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}

	got, err := EuclideanSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("expected 1 for identical vectors, got %f", got)
	}

	// Antipodal unit vectors sit at the maximum distance.
	got, err = EuclideanSimilarity([]float32{1, 0}, []float32{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 for antipodal vectors, got %f", got)
	}
}

func TestManhattanSimilarity_Range(t *testing.T) {
	a := []float32{0.5, -0.5, 0.7071}
	b := []float32{-0.3, 0.2, 0.9}

	got, err := ManhattanSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 0 || got > 1 {
		t.Errorf("similarity out of [0,1]: %f", got)
	}
}

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}

	out, err := NormalizeL2(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(Magnitude(out)-1) > 1e-6 {
		t.Errorf("expected unit magnitude, got %f", Magnitude(out))
	}
	if out[0] != 0.6 || out[1] != 0.8 {
		t.Errorf("expected (0.6, 0.8), got (%f, %f)", out[0], out[1])
	}
	// Input untouched.
	if v[0] != 3 || v[1] != 4 {
		t.Errorf("expected input unchanged, got (%f, %f)", v[0], v[1])
	}
}

func TestNormalizeL2_Idempotent(t *testing.T) {
	once, err := NormalizeL2([]float32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := NormalizeL2(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range once {
		if math.Abs(float64(once[i]-twice[i])) > 1e-6 {
			t.Fatalf("index %d: expected %f, got %f", i, once[i], twice[i])
		}
	}
}

func TestNormalizeL2_Errors(t *testing.T) {
	if _, err := NormalizeL2(nil); !errors.Is(err, ErrEmptyVector) {
		t.Errorf("expected empty vector error, got %v", err)
	}
	if _, err := NormalizeL2([]float32{0, 0, 0}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected zero vector error, got %v", err)
	}
}
