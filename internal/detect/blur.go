package detect

import "github.com/facegate/facegate/internal/imaging"

// LaplacianVariance measures sharpness as the mean squared response of the
// discrete Laplacian over all interior pixels. A uniform buffer scores 0;
// sharp, textured images score in the hundreds or above.
func LaplacianVariance(g *imaging.Gray) float64 {
	w, h := g.Width, g.Height
	if w < 3 || h < 3 {
		return 0
	}

	var sum float64
	for y := 1; y < h-1; y++ {
		row := y * w
		for x := 1; x < w-1; x++ {
			// Kernel [[0,-1,0],[-1,4,-1],[0,-1,0]].
			r := 4*float64(g.Pix[row+x]) -
				float64(g.Pix[row+x-1]) -
				float64(g.Pix[row+x+1]) -
				float64(g.Pix[row-w+x]) -
				float64(g.Pix[row+w+x])
			sum += r * r
		}
	}

	count := (w - 2) * (h - 2)
	return sum / float64(count)
}

// CheckSharpness rejects blurry images with kind KindBlur.
// Returns the measured Laplacian variance either way.
func CheckSharpness(cfg Config, data []byte) (float64, error) {
	sample, err := imaging.ResizeGray(data, cfg.BlurSampleSize, cfg.BlurSampleSize)
	if err != nil {
		return 0, newError(KindValidation, "decoding image for blur analysis: %v", err)
	}

	variance := LaplacianVariance(sample)
	if variance < cfg.MinSharpness {
		return variance, newError(KindBlur, "image too blurry (Laplacian variance %.1f < %.0f)", variance, cfg.MinSharpness)
	}
	return variance, nil
}
