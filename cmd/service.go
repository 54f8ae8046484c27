package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/facegate/facegate/internal/config"
	"github.com/facegate/facegate/internal/detect"
	"github.com/facegate/facegate/internal/embedding"
	"github.com/facegate/facegate/internal/store"
)

// openStore connects to PostgreSQL and runs pending migrations.
func openStore(cfg *config.Config) (*store.Postgres, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	return store.NewPostgres(store.PostgresConfig{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
}

// newPipeline builds the detection pipeline from the loaded thresholds.
func newPipeline(cfg *config.Config) *detect.Pipeline {
	return detect.NewPipeline(cfg.Detect)
}

// newEmbedder builds the embedding model client.
func newEmbedder(cfg *config.Config) *embedding.Client {
	return embedding.NewClient(cfg.Model.URL, cfg.Model.Dim)
}

// loadStoredVector fetches a subject's stored embedding and revalidates it
// before use. Vectors coming back from storage must parse, be finite and fall
// inside the accepted length bounds.
func loadStoredVector(ctx context.Context, st store.Store, subjectID string) ([]float32, error) {
	stored, err := st.Get(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("loading stored embedding: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("subject %q is not enrolled", subjectID)
	}

	vals, err := embedding.ParseStored(stored.Embedding)
	if err == nil {
		err = embedding.ValidateStored(vals)
	}
	if err != nil {
		return nil, fmt.Errorf("stored embedding for %q is corrupt: %w", subjectID, err)
	}
	return vals, nil
}
