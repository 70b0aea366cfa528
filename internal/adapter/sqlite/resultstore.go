package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/plateful/mealscan/internal/domain"
)

// ResultStore persists the latest scan result payload per cache key.
// Only the newest payload for a key is retained; writes overwrite.
type ResultStore struct {
	db *sql.DB
}

// NewResultStore creates a ResultStore over an opened cache database.
func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{db: db}
}

// Save upserts the payload for key.
func (s *ResultStore) Save(ctx context.Context, key string, payload []byte) error {
	query, args, err := sq.Insert("scan_results").
		Columns("key", "payload", "updated_at").
		Values(key, string(payload), time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save scan_result: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save scan_result %s: %w", key, err)
	}
	return nil
}

// Load returns the payload for key, or domain.ErrNotFound.
func (s *ResultStore) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sq.Select("payload").
		From("scan_results").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load scan_result: %w", err)
	}

	var payload string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scan_result %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load scan_result %s: %w", key, err)
	}
	return []byte(payload), nil
}

// Delete removes the payload for key. Missing keys are not an error.
func (s *ResultStore) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete("scan_results").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete scan_result: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete scan_result %s: %w", key, err)
	}
	return nil
}
