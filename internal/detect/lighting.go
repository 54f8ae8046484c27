package detect

import "github.com/facegate/facegate/internal/imaging"

// CheckLighting validates brightness and contrast on a small greyscale
// downsample. Violations carry kind KindLighting and the measured value.
func CheckLighting(cfg Config, data []byte) (Stats, error) {
	sample, err := imaging.ResizeGray(data, cfg.LightingSampleSize, cfg.LightingSampleSize)
	if err != nil {
		return Stats{}, newError(KindValidation, "decoding image for lighting analysis: %v", err)
	}
	return checkLightingStats(cfg, ComputeStats(sample))
}

func checkLightingStats(cfg Config, s Stats) (Stats, error) {
	if s.Mean < cfg.MinBrightness {
		return s, newError(KindLighting, "image too dark (mean brightness %.1f < %.0f)", s.Mean, cfg.MinBrightness)
	}
	if s.Mean > cfg.MaxBrightness {
		return s, newError(KindLighting, "image too bright (mean brightness %.1f > %.0f)", s.Mean, cfg.MaxBrightness)
	}
	if s.Std < cfg.MinContrast {
		return s, newError(KindLighting, "low contrast (std %.1f < %.0f)", s.Std, cfg.MinContrast)
	}
	return s, nil
}
