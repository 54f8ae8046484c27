package detect

import (
	"math"

	"github.com/facegate/facegate/internal/imaging"
)

// Stats summarizes the intensity distribution of a greyscale buffer.
type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// ComputeStats returns mean and standard deviation over all samples.
// Uses the one-pass form std = sqrt(E[p^2] - E[p]^2).
func ComputeStats(g *imaging.Gray) Stats {
	n := len(g.Pix)
	if n == 0 {
		return Stats{}
	}

	var sum, sumSq float64
	for _, p := range g.Pix {
		v := float64(p)
		sum += v
		sumSq += v * v
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0 // rounding
	}

	return Stats{Mean: mean, Std: math.Sqrt(variance)}
}
