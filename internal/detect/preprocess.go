package detect

import (
	"github.com/facegate/facegate/internal/imaging"
)

// Pipeline runs the full gatekeeping sequence for one image: quality gate,
// lighting validation, blur detection and face location, then produces the
// normalized pixel tensor for the embedding model. One invocation processes
// one image synchronously; a failing stage aborts immediately and the error
// is surfaced verbatim.
type Pipeline struct {
	cfg     Config
	locator *Locator
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg, locator: NewLocator(cfg)}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Report collects the measurements of every pipeline stage for one image.
// Region is only set when a face was located.
type Report struct {
	Meta      imaging.Meta `json:"meta"`
	Lighting  Stats        `json:"lighting"`
	Sharpness float64      `json:"sharpness"`
	Region    *Region      `json:"region,omitempty"`
}

// Preprocess validates the image and returns the normalized EmbedSize x
// EmbedSize x 3 tensor with values mapped from [0,255] to [-1,1], ready for
// the embedding model.
func (p *Pipeline) Preprocess(data []byte) ([]float32, error) {
	if _, err := p.run(data); err != nil {
		return nil, err
	}
	return p.tensor(data)
}

// LocateFace validates the image up to and including face location and
// returns the single accepted region.
func (p *Pipeline) LocateFace(data []byte) (Region, error) {
	report, err := p.run(data)
	if err != nil {
		return Region{}, err
	}
	return *report.Region, nil
}

// Inspect runs every stage and returns the collected measurements. Unlike
// Preprocess it keeps the partially-filled report alongside the error, so
// callers can show how far an image got.
func (p *Pipeline) Inspect(data []byte) (*Report, error) {
	report, err := p.run(data)
	return report, err
}

func (p *Pipeline) run(data []byte) (*Report, error) {
	report := &Report{}

	meta, err := imaging.DecodeMeta(data)
	if err != nil {
		return report, newError(KindValidation, "unreadable image: %v", err)
	}
	report.Meta = meta

	if err := CheckQuality(p.cfg, data, meta); err != nil {
		return report, err
	}

	stats, err := CheckLighting(p.cfg, data)
	report.Lighting = stats
	if err != nil {
		return report, err
	}

	variance, err := CheckSharpness(p.cfg, data)
	report.Sharpness = variance
	if err != nil {
		return report, err
	}

	region, err := p.locator.Locate(data)
	if err != nil {
		return report, err
	}
	report.Region = &region

	return report, nil
}

// tensor produces the normalized RGB tensor for the embedding model.
func (p *Pipeline) tensor(data []byte) ([]float32, error) {
	size := p.cfg.EmbedSize
	rgb, err := imaging.ResizeCoverRGB(data, size, size)
	if err != nil {
		return nil, newError(KindValidation, "preparing model input: %v", err)
	}

	tensor := make([]float32, len(rgb))
	for i, v := range rgb {
		tensor[i] = float32(v)/127.5 - 1
	}
	return tensor, nil
}
