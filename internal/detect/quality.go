package detect

import (
	"strings"

	"github.com/facegate/facegate/internal/imaging"
)

// CheckQuality runs the cheap format/resolution/aspect/size checks against
// the decoded header. It runs before any pixel analysis; every check is a
// hard rejection with kind KindValidation.
func CheckQuality(cfg Config, data []byte, meta imaging.Meta) error {
	format := strings.ToLower(meta.Format)
	allowed := false
	for _, f := range cfg.AllowedFormats {
		if format == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return newError(KindValidation, "unsupported format %q (allowed: %s)",
			meta.Format, strings.Join(cfg.AllowedFormats, ", "))
	}

	w, h := meta.Width, meta.Height
	short, long := w, h
	if short > long {
		short, long = long, short
	}
	if short < cfg.MinShortSide || long < cfg.MinLongSide {
		return newError(KindValidation, "resolution %dx%d below minimum (short side >= %d, long side >= %d)",
			w, h, cfg.MinShortSide, cfg.MinLongSide)
	}
	if w > cfg.MaxSide || h > cfg.MaxSide {
		return newError(KindValidation, "resolution %dx%d exceeds maximum side %d", w, h, cfg.MaxSide)
	}

	aspect := float64(w) / float64(h)
	if aspect < cfg.MinAspect || aspect > cfg.MaxAspect {
		return newError(KindValidation, "aspect ratio %.2f outside [%.1f, %.1f]", aspect, cfg.MinAspect, cfg.MaxAspect)
	}

	if len(data) < cfg.MinBytes || len(data) > cfg.MaxBytes {
		return newError(KindValidation, "file size %d bytes outside [%d, %d]", len(data), cfg.MinBytes, cfg.MaxBytes)
	}

	if w <= 0 || h <= 0 {
		return newError(KindValidation, "corrupt image dimensions %dx%d", w, h)
	}

	return nil
}
