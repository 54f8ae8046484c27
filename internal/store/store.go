// Package store defines the embedding storage contract and its
// implementations. The core pipeline treats storage as an opaque key-value
// service keyed by subject ID.
package store

import (
	"context"
	"time"
)

// StoredEmbedding is one subject's enrolled face embedding.
type StoredEmbedding struct {
	ID        string // uuid
	SubjectID string
	Embedding []float32
	Model     string
	Dim       int
	CreatedAt time.Time
}

// Store is the embedding persistence contract. Get returns nil (not an
// error) when the subject has no enrollment.
type Store interface {
	Get(ctx context.Context, subjectID string) (*StoredEmbedding, error)
	Save(ctx context.Context, emb StoredEmbedding) error
	Delete(ctx context.Context, subjectID string) error
	Count(ctx context.Context) (int, error)
	All(ctx context.Context) ([]StoredEmbedding, error)
}
