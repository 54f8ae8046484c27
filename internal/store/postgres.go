package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresConfig configures the PostgreSQL connection pool.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Postgres is a pgvector-backed Store.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool, verifies connectivity and runs
// pending migrations.
func NewPostgres(cfg PostgresConfig) (*Postgres, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return p, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	return nil
}

// Get retrieves a subject's embedding, returns nil if not enrolled.
func (p *Postgres) Get(ctx context.Context, subjectID string) (*StoredEmbedding, error) {
	query := `
		SELECT id, subject_id, embedding, model, dim, created_at
		FROM subject_embeddings
		WHERE subject_id = $1
	`

	var emb StoredEmbedding
	var vec pgvector.Vector

	err := p.db.QueryRowContext(ctx, query, subjectID).Scan(
		&emb.ID,
		&emb.SubjectID,
		&vec,
		&emb.Model,
		&emb.Dim,
		&emb.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	emb.Embedding = vec.Slice()
	return &emb, nil
}

// Save stores a subject's embedding (upsert; re-enrollment replaces the
// previous vector).
func (p *Postgres) Save(ctx context.Context, emb StoredEmbedding) error {
	if emb.ID == "" {
		emb.ID = uuid.NewString()
	}

	query := `
		INSERT INTO subject_embeddings (id, subject_id, embedding, model, dim)
		VALUES ($1, $2, $3::vector, $4, $5)
		ON CONFLICT (subject_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			model = EXCLUDED.model,
			dim = EXCLUDED.dim,
			created_at = NOW()
	`

	vec := pgvector.NewVector(emb.Embedding)
	if _, err := p.db.ExecContext(ctx, query, emb.ID, emb.SubjectID, vec, emb.Model, emb.Dim); err != nil {
		return fmt.Errorf("save embedding: %w", err)
	}
	return nil
}

// Delete removes a subject's enrollment. Deleting an absent subject is not
// an error.
func (p *Postgres) Delete(ctx context.Context, subjectID string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM subject_embeddings WHERE subject_id = $1", subjectID); err != nil {
		return fmt.Errorf("delete embedding: %w", err)
	}
	return nil
}

// Count returns the number of enrolled subjects.
func (p *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subject_embeddings").Scan(&count); err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return count, nil
}

// All retrieves every enrollment, ordered by subject ID. Used to warm the
// in-memory identify index at startup.
func (p *Postgres) All(ctx context.Context) ([]StoredEmbedding, error) {
	query := `
		SELECT id, subject_id, embedding, model, dim, created_at
		FROM subject_embeddings
		ORDER BY subject_id
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all embeddings: %w", err)
	}
	defer rows.Close()

	var embeddings []StoredEmbedding
	for rows.Next() {
		var emb StoredEmbedding
		var vec pgvector.Vector

		if err := rows.Scan(&emb.ID, &emb.SubjectID, &vec, &emb.Model, &emb.Dim, &emb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		emb.Embedding = vec.Slice()
		embeddings = append(embeddings, emb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate embeddings: %w", err)
	}

	return embeddings, nil
}

// Verify interface compliance.
var _ Store = (*Postgres)(nil)
