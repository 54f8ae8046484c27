package detect

import "sort"

// ResolveOverlaps performs greedy non-max suppression: candidates are taken
// in order of descending face score and accepted unless they overlap an
// already-accepted region by more than maxOverlap of the smaller region's
// area. Ties keep the original order (first seen wins).
func ResolveOverlaps(regions []Region, maxOverlap float64) []Region {
	if len(regions) <= 1 {
		return regions
	}

	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FaceScore > sorted[j].FaceScore
	})

	var accepted []Region
	for _, candidate := range sorted {
		keep := true
		for _, a := range accepted {
			if overlapRatio(candidate, a) > maxOverlap {
				keep = false
				break
			}
		}
		if keep {
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}

// overlapRatio returns the rectangle intersection area divided by the
// smaller of the two region areas. Zero when the regions are disjoint.
func overlapRatio(a, b Region) float64 {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)

	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	intersection := (x2 - x1) * (y2 - y1)

	smaller := min(a.Area(), b.Area())
	if smaller <= 0 {
		return 0
	}
	return float64(intersection) / float64(smaller)
}
