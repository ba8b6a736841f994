package sharestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/stylecast/internal/domain/share"
)

const schema = `
CREATE TABLE IF NOT EXISTS share_results (
	id             TEXT PRIMARY KEY,
	original_image TEXT NOT NULL DEFAULT '',
	payload        JSONB NOT NULL,
	language       TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
)`

// PostgresRepository implements share.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the share_results table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create share_results: %w", err)
	}
	return nil
}

// Save upserts by id.
func (r *PostgresRepository) Save(ctx context.Context, result share.Result) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO share_results (id, original_image, payload, language, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET original_image = EXCLUDED.original_image,
		    payload = EXCLUDED.payload,
		    language = EXCLUDED.language,
		    created_at = EXCLUDED.created_at
	`, result.ID, result.OriginalImage, []byte(result.AnalysisResult), result.Language, result.CreatedAt)
	return err
}

// Find fetches by id.
func (r *PostgresRepository) Find(ctx context.Context, id string) (share.Result, bool, error) {
	var (
		result  share.Result
		payload []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, original_image, payload, language, created_at
		FROM share_results
		WHERE id = $1
	`, id).Scan(&result.ID, &result.OriginalImage, &payload, &result.Language, &result.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return share.Result{}, false, nil
	}
	if err != nil {
		return share.Result{}, false, err
	}
	result.AnalysisResult = payload
	result.CreatedAt = result.CreatedAt.UTC()
	return result, true, nil
}

var _ share.Repository = (*PostgresRepository)(nil)
