package detect

import "github.com/facegate/facegate/internal/imaging"

// highPassKernel is a 3x3 edge detector: center weight 8, neighbors -1.
// The weights sum to zero, so flat areas produce no response.
var highPassKernel = [9]float64{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}

// buildEdgeMap produces the edge-intensity buffer the locator operates on:
// a DetectSize x DetectSize greyscale downsample convolved with the
// high-pass kernel.
func buildEdgeMap(cfg Config, data []byte) (*imaging.Gray, error) {
	grey, err := imaging.ResizeGray(data, cfg.DetectSize, cfg.DetectSize)
	if err != nil {
		return nil, newError(KindValidation, "decoding image for face detection: %v", err)
	}
	return imaging.Convolve3x3(grey, highPassKernel), nil
}
