package detect

import "github.com/facegate/facegate/internal/imaging"

// Scoring thresholds. Like the rest of the detection constants these are
// empirically calibrated; see thresholds.yaml for the tunable subset.
const (
	symmetryMaxOffset = 15 // half-width cap for mirror comparison
	symmetryTolerance = 50 // intensity difference mapped linearly to [0,1]

	eyeBandFrac    = 0.4  // top fraction of the region searched for an eye row
	eyeTrimFrac    = 0.15 // horizontal trim on each side
	eyeIntensity   = 40   // edge intensity counting as eye structure
	eyeRowNorm     = 0.7  // expected eye-row hit count as fraction of width
	mouthBandFrac  = 0.4  // bottom fraction searched for a mouth row
	mouthTrimFrac  = 0.20
	mouthIntensity = 35
	mouthRowNorm   = 0.6

	edgeIntensity       = 30  // edge intensity for distribution analysis
	edgeDensityLow      = 0.1 // ideal edge density band (exclusive)
	edgeDensityHigh     = 0.4
	edgeConcentration   = 0.3 // central-disk edge fraction considered fully concentrated
	centralDiskFrac     = 0.3 // disk radius as fraction of min(width, height)
	positionVerticalCut = 0.6 // normalized center-y above which the score decays
)

// scoreRegion combines five sub-scores into one face confidence in [0,1].
func scoreRegion(edges *imaging.Gray, r Region, w ScoreWeights) float64 {
	score := w.Symmetry*symmetryScore(edges, r) +
		w.Eyes*eyeScore(edges, r) +
		w.Mouth*mouthScore(edges, r) +
		w.Edges*edgeDistributionScore(edges, r) +
		w.Position*positionScore(edges, r)
	if score > 1 {
		score = 1
	}
	return score
}

// symmetryScore compares edge intensity mirrored around the vertical center
// line: faces are roughly left-right symmetric, noise and profile edges are
// not. Each compared pair contributes max(0, 50-|diff|)/50.
func symmetryScore(edges *imaging.Gray, r Region) float64 {
	maxOffset := r.Width / 2
	if maxOffset > symmetryMaxOffset {
		maxOffset = symmetryMaxOffset
	}
	if maxOffset < 1 {
		return 0
	}

	centerX := r.X + r.Width/2
	var total float64
	pairs := 0

	for y := r.Y; y < r.Y+r.Height; y++ {
		for offset := 1; offset <= maxOffset; offset++ {
			left := centerX - offset
			right := centerX + offset
			if left < r.X || right >= r.X+r.Width {
				break
			}
			diff := int(edges.At(left, y)) - int(edges.At(right, y))
			if diff < 0 {
				diff = -diff
			}
			contrib := float64(symmetryTolerance-diff) / symmetryTolerance
			if contrib > 0 {
				total += contrib
			}
			pairs++
		}
	}

	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

// bandRowScore finds, within a horizontal band of the region, the row with
// the most pixels above the intensity threshold and normalizes the count
// against norm*width, capped at 1. Eye and mouth scoring share this shape.
func bandRowScore(edges *imaging.Gray, r Region, yFrom, yTo int, trimFrac float64, intensity uint8, norm float64) float64 {
	trim := int(float64(r.Width) * trimFrac)
	xFrom := r.X + trim
	xTo := r.X + r.Width - trim
	if xFrom >= xTo || yFrom >= yTo {
		return 0
	}

	best := 0
	for y := yFrom; y < yTo; y++ {
		count := 0
		for x := xFrom; x < xTo; x++ {
			if edges.At(x, y) > intensity {
				count++
			}
		}
		if count > best {
			best = count
		}
	}

	score := float64(best) / (norm * float64(r.Width))
	if score > 1 {
		score = 1
	}
	return score
}

// eyeScore looks for a strong horizontal edge row in the upper part of the
// region, where a pair of eyes produces dense structure.
func eyeScore(edges *imaging.Gray, r Region) float64 {
	yTo := r.Y + int(float64(r.Height)*eyeBandFrac)
	return bandRowScore(edges, r, r.Y, yTo, eyeTrimFrac, eyeIntensity, eyeRowNorm)
}

// mouthScore does the same in the lower part of the region.
func mouthScore(edges *imaging.Gray, r Region) float64 {
	yFrom := r.Y + int(float64(r.Height)*(1-mouthBandFrac))
	return bandRowScore(edges, r, yFrom, r.Y+r.Height, mouthTrimFrac, mouthIntensity, mouthRowNorm)
}

// edgeDistributionScore averages two measures: whether the overall edge
// density sits in the band typical for faces, and how concentrated the
// edges are in a central disk.
func edgeDistributionScore(edges *imaging.Gray, r Region) float64 {
	total := r.Area()
	if total == 0 {
		return 0
	}

	cx := float64(r.X) + float64(r.Width)/2
	cy := float64(r.Y) + float64(r.Height)/2
	minSide := r.Width
	if r.Height < minSide {
		minSide = r.Height
	}
	radius := centralDiskFrac * float64(minSide)
	radiusSq := radius * radius

	edgeCount := 0
	centralCount := 0
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if edges.At(x, y) <= edgeIntensity {
				continue
			}
			edgeCount++
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= radiusSq {
				centralCount++
			}
		}
	}

	density := float64(edgeCount) / float64(total)
	densityScore := 0.5
	if density > edgeDensityLow && density < edgeDensityHigh {
		densityScore = 1.0
	}

	concentrationScore := 0.0
	if edgeCount > 0 {
		concentration := float64(centralCount) / float64(edgeCount)
		if concentration > edgeConcentration {
			concentrationScore = 1.0
		} else {
			concentrationScore = concentration / edgeConcentration
		}
	}

	return (densityScore + concentrationScore) / 2
}

// positionScore favors regions centered horizontally and in the upper part
// of the frame, where a portrait subject sits.
func positionScore(edges *imaging.Gray, r Region) float64 {
	cx := (float64(r.X) + float64(r.Width)/2) / float64(edges.Width)
	cy := (float64(r.Y) + float64(r.Height)/2) / float64(edges.Height)

	horizontal := 1 - 2*abs(cx-0.5)

	vertical := 1.0
	if cy >= positionVerticalCut {
		vertical = 1 - 2.5*(cy-positionVerticalCut)
		if vertical < 0 {
			vertical = 0
		}
	}

	return (horizontal + vertical) / 2
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
