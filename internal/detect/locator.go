package detect

import "github.com/facegate/facegate/internal/imaging"

// Locator finds the single face region in an image using multi-pass
// adaptive thresholding over an edge map. It holds only immutable
// configuration and is safe for concurrent use; all working buffers are
// allocated per call.
type Locator struct {
	cfg Config
}

// NewLocator creates a locator with the given configuration.
func NewLocator(cfg Config) *Locator {
	return &Locator{cfg: cfg}
}

// Locate runs the full detection: edge map, threshold passes, region
// growing, geometric filtering, face scoring and overlap resolution.
// Exactly one accepted region is returned; zero accepted regions fail with
// kind KindNoFace, more than one with kind KindMultipleFaces.
//
// The returned region is in edge-buffer coordinates (DetectSize square).
func (l *Locator) Locate(data []byte) (Region, error) {
	edges, err := buildEdgeMap(l.cfg, data)
	if err != nil {
		return Region{}, err
	}
	return l.locateInEdges(edges)
}

func (l *Locator) locateInEdges(edges *imaging.Gray) (Region, error) {
	visited := make([]bool, edges.Width*edges.Height)

	// Passes go from strict to permissive; the first pass that accepts at
	// least one region decides the outcome.
	for _, pass := range l.cfg.Passes {
		clear(visited)
		accepted := l.runPass(edges, visited, pass)
		if len(accepted) == 0 {
			continue
		}
		if len(accepted) > 1 {
			return Region{}, newError(KindMultipleFaces, "%d face regions detected, expected exactly one", len(accepted))
		}
		return accepted[0], nil
	}

	return Region{}, newError(KindNoFace, "no face region detected after %d detection passes", len(l.cfg.Passes))
}

// runPass executes one full detection pass: seed scan, region growing,
// size and geometry filters, face scoring and overlap resolution.
func (l *Locator) runPass(edges *imaging.Gray, visited []bool, pass ThresholdPass) []Region {
	minRegion := l.cfg.minRegionSize()
	minSize := int(float64(minRegion*minRegion) * l.cfg.MinRegionFill)

	var candidates []Region
	for y := minRegion; y < edges.Height-minRegion; y += l.cfg.SeedStride {
		for x := minRegion; x < edges.Width-minRegion; x += l.cfg.SeedStride {
			idx := y*edges.Width + x
			if visited[idx] || edges.Pix[idx] < pass.Edge {
				continue
			}

			// Growth admits weaker edges than the seed so connected
			// structure around a strong edge is captured whole.
			r := GrowRegion(edges, visited, x, y, pass.Region)
			if r.Size <= minSize {
				continue
			}
			if !l.passesGeometry(r, minRegion) {
				continue
			}

			r.FaceScore = scoreRegion(edges, r, l.cfg.Weights)
			if r.FaceScore > l.cfg.MinFaceScore {
				candidates = append(candidates, r)
			}
		}
	}

	return ResolveOverlaps(candidates, l.cfg.MaxOverlap)
}

// passesGeometry filters out regions whose shape cannot plausibly be a face.
func (l *Locator) passesGeometry(r Region, minRegion int) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}

	aspect := float64(r.Width) / float64(r.Height)
	if aspect <= l.cfg.MinRegionAspect || aspect >= l.cfg.MaxRegionAspect {
		return false
	}

	sideRatio := float64(min(r.Width, r.Height)) / float64(max(r.Width, r.Height))
	if sideRatio <= l.cfg.MinSideRatio {
		return false
	}

	minSide := l.cfg.MinSideFrac * float64(minRegion)
	if float64(r.Width) <= minSide || float64(r.Height) <= minSide {
		return false
	}

	return r.Density > l.cfg.MinDensity && r.Density < l.cfg.MaxDensity
}
