package detect

// ThresholdPass is one step of the multi-pass detection loop. Edge is the
// minimum intensity for a seed pixel, Region the lower admission threshold
// used while growing from that seed.
type ThresholdPass struct {
	Edge   uint8 `yaml:"edge"`
	Region uint8 `yaml:"region"`
}

// ScoreWeights are the relative weights of the five face sub-scores.
// They should sum to 1; the combined score is clamped to 1 regardless.
type ScoreWeights struct {
	Symmetry float64 `yaml:"symmetry"`
	Eyes     float64 `yaml:"eyes"`
	Mouth    float64 `yaml:"mouth"`
	Edges    float64 `yaml:"edges"`
	Position float64 `yaml:"position"`
}

// Config holds every tunable of the detection pipeline. The values are
// calibration knobs chosen empirically; treat them as a unit when adjusting.
// A Config is immutable after construction and safe for concurrent use.
type Config struct {
	// Quality gate.
	AllowedFormats []string `yaml:"allowed_formats"` // lowercase decoder names
	MinShortSide   int      `yaml:"min_short_side"`  // min(width, height) lower bound
	MinLongSide    int      `yaml:"min_long_side"`   // max(width, height) lower bound
	MaxSide        int      `yaml:"max_side"`
	MinAspect      float64  `yaml:"min_aspect"` // width/height
	MaxAspect      float64  `yaml:"max_aspect"`
	MinBytes       int      `yaml:"min_bytes"`
	MaxBytes       int      `yaml:"max_bytes"`

	// Lighting gate.
	LightingSampleSize int     `yaml:"lighting_sample_size"`
	MinBrightness      float64 `yaml:"min_brightness"`
	MaxBrightness      float64 `yaml:"max_brightness"`
	MinContrast        float64 `yaml:"min_contrast"`

	// Blur gate.
	BlurSampleSize int     `yaml:"blur_sample_size"`
	MinSharpness   float64 `yaml:"min_sharpness"` // Laplacian variance lower bound

	// Face locator.
	DetectSize      int             `yaml:"detect_size"` // edge buffer is DetectSize x DetectSize
	Passes          []ThresholdPass `yaml:"passes"`
	SeedStride      int             `yaml:"seed_stride"`
	BorderFrac      float64         `yaml:"border_frac"`       // border excluded from seeding, fraction of DetectSize
	MinRegionFill   float64         `yaml:"min_region_fill"`   // size > minRegionSize^2 * MinRegionFill
	MinRegionAspect float64         `yaml:"min_region_aspect"` // width/height, exclusive
	MaxRegionAspect float64         `yaml:"max_region_aspect"` // exclusive
	MinSideRatio    float64         `yaml:"min_side_ratio"`    // min(w,h)/max(w,h)
	MinSideFrac     float64         `yaml:"min_side_frac"`     // sides > MinSideFrac * minRegionSize
	MinDensity      float64         `yaml:"min_density"`       // exclusive
	MaxDensity      float64         `yaml:"max_density"`       // exclusive
	MinFaceScore    float64         `yaml:"min_face_score"`
	MaxOverlap      float64         `yaml:"max_overlap"` // of the smaller region's area
	Weights         ScoreWeights    `yaml:"weights"`

	// Embedding model input.
	EmbedSize int `yaml:"embed_size"` // tensor is EmbedSize x EmbedSize x 3
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		AllowedFormats: []string{"jpeg", "png", "webp"},
		MinShortSide:   150,
		MinLongSide:    200,
		MaxSide:        4000,
		MinAspect:      0.5,
		MaxAspect:      2.0,
		MinBytes:       2048,
		MaxBytes:       10 * 1024 * 1024,

		LightingSampleSize: 224,
		MinBrightness:      30,
		MaxBrightness:      200,
		MinContrast:        15,

		BlurSampleSize: 300,
		MinSharpness:   100,

		DetectSize: 400,
		Passes: []ThresholdPass{
			{Edge: 40, Region: 25},
			{Edge: 30, Region: 20},
			{Edge: 20, Region: 15},
		},
		SeedStride:      8,
		BorderFrac:      0.1,
		MinRegionFill:   0.08,
		MinRegionAspect: 0.6,
		MaxRegionAspect: 1.7,
		MinSideRatio:    0.5,
		MinSideFrac:     0.8,
		MinDensity:      0.1,
		MaxDensity:      0.8,
		MinFaceScore:    0.3,
		MaxOverlap:      0.3,
		Weights: ScoreWeights{
			Symmetry: 0.30,
			Eyes:     0.25,
			Mouth:    0.20,
			Edges:    0.15,
			Position: 0.10,
		},

		EmbedSize: 112,
	}
}

// minRegionSize derives the seeding border width and minimum region side
// from the detection buffer size.
func (c Config) minRegionSize() int {
	return int(float64(c.DetectSize) * c.BorderFrac)
}
