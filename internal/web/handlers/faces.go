package handlers

import (
	"context"

	"github.com/facegate/facegate/internal/detect"
	"github.com/facegate/facegate/internal/store"
)

// Preprocessor runs the face detection pipeline on raw image bytes.
// *detect.Pipeline is the production implementation.
type Preprocessor interface {
	Preprocess(data []byte) ([]float32, error)
	Inspect(data []byte) (*detect.Report, error)
	Config() detect.Config
}

// Embedder produces a face embedding from a normalized pixel tensor.
type Embedder interface {
	Infer(ctx context.Context, tensor []float32, size int) ([]float32, error)
}

// FacesHandler handles enrollment, verification and identification endpoints.
type FacesHandler struct {
	pipeline  Preprocessor
	embedder  Embedder
	store     store.Store
	index     *store.IdentifyIndex
	threshold float64
}

// NewFacesHandler creates a new faces handler.
func NewFacesHandler(pipeline Preprocessor, embedder Embedder, st store.Store, index *store.IdentifyIndex, threshold float64) *FacesHandler {
	return &FacesHandler{
		pipeline:  pipeline,
		embedder:  embedder,
		store:     st,
		index:     index,
		threshold: threshold,
	}
}

// embed runs the detection pipeline on the image and sends the resulting
// tensor to the embedding model.
func (h *FacesHandler) embed(ctx context.Context, image []byte) ([]float32, error) {
	tensor, err := h.pipeline.Preprocess(image)
	if err != nil {
		return nil, err
	}
	return h.embedder.Infer(ctx, tensor, h.pipeline.Config().EmbedSize)
}
