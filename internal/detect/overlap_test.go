package detect

import (
	"testing"
)

func TestResolveOverlaps_Disjoint(t *testing.T) {
	regions := []Region{
		{X: 0, Y: 0, Width: 50, Height: 50, FaceScore: 0.8},
		{X: 100, Y: 100, Width: 50, Height: 50, FaceScore: 0.6},
	}

	out := ResolveOverlaps(regions, 0.3)

	if len(out) != 2 {
		t.Fatalf("expected both disjoint regions kept, got %d", len(out))
	}
}

func TestResolveOverlaps_KeepsHigherScore(t *testing.T) {
	regions := []Region{
		{X: 0, Y: 0, Width: 50, Height: 50, FaceScore: 0.5},
		{X: 10, Y: 10, Width: 50, Height: 50, FaceScore: 0.9},
	}

	out := ResolveOverlaps(regions, 0.3)

	if len(out) != 1 {
		t.Fatalf("expected one region after suppression, got %d", len(out))
	}
	if out[0].FaceScore != 0.9 {
		t.Errorf("expected the higher-scoring region, got score %f", out[0].FaceScore)
	}
}

func TestResolveOverlaps_ContainedRegionSuppressed(t *testing.T) {
	// A small region fully inside a bigger one overlaps 100% of its own
	// area, so it is suppressed regardless of the bigger region's size.
	regions := []Region{
		{X: 0, Y: 0, Width: 100, Height: 100, FaceScore: 0.9},
		{X: 40, Y: 40, Width: 10, Height: 10, FaceScore: 0.7},
	}

	out := ResolveOverlaps(regions, 0.3)

	if len(out) != 1 {
		t.Fatalf("expected contained region suppressed, got %d regions", len(out))
	}
	if out[0].Width != 100 {
		t.Errorf("expected the big region kept, got width %d", out[0].Width)
	}
}

func TestResolveOverlaps_AtThresholdKept(t *testing.T) {
	// Overlap is exactly 30% of the smaller area; suppression requires
	// strictly more.
	regions := []Region{
		{X: 0, Y: 0, Width: 100, Height: 100, FaceScore: 0.9},
		{X: 70, Y: 0, Width: 100, Height: 100, FaceScore: 0.8},
	}

	out := ResolveOverlaps(regions, 0.3)

	if len(out) != 2 {
		t.Fatalf("expected region at exact overlap threshold kept, got %d", len(out))
	}
}

func TestResolveOverlaps_SingleAndEmpty(t *testing.T) {
	if out := ResolveOverlaps(nil, 0.3); len(out) != 0 {
		t.Errorf("expected empty output for nil input, got %d", len(out))
	}

	one := []Region{{X: 0, Y: 0, Width: 10, Height: 10, FaceScore: 0.5}}
	if out := ResolveOverlaps(one, 0.3); len(out) != 1 {
		t.Errorf("expected single region passed through, got %d", len(out))
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b Region
		want float64
	}{
		{"disjoint", Region{X: 0, Y: 0, Width: 10, Height: 10}, Region{X: 20, Y: 20, Width: 10, Height: 10}, 0},
		{"identical", Region{X: 0, Y: 0, Width: 10, Height: 10}, Region{X: 0, Y: 0, Width: 10, Height: 10}, 1},
		{"half of smaller", Region{X: 0, Y: 0, Width: 10, Height: 10}, Region{X: 5, Y: 0, Width: 10, Height: 10}, 0.5},
		{"touching edges", Region{X: 0, Y: 0, Width: 10, Height: 10}, Region{X: 10, Y: 0, Width: 10, Height: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}
