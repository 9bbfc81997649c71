package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps history entries in the history_entries table
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed history store
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts the payload and evicts the oldest entries beyond the
// kind's cap
func (s *PostgresStore) Append(ctx context.Context, kind Kind, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode history payload: %w", err)
	}

	query := `
		INSERT INTO history_entries (kind, payload)
		VALUES ($1, $2)`

	if _, err := s.db.Exec(ctx, query, kind, data); err != nil {
		return err
	}

	evict := `
		DELETE FROM history_entries
		WHERE kind = $1 AND id NOT IN (
			SELECT id FROM history_entries
			WHERE kind = $1
			ORDER BY created_at DESC
			LIMIT $2
		)`

	_, err = s.db.Exec(ctx, evict, kind, kind.Cap())
	return err
}

// List returns the retained entries in the kind's listing order
func (s *PostgresStore) List(ctx context.Context, kind Kind) ([]Entry, error) {
	order := "ASC"
	if kind.NewestFirst() {
		order = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, kind, payload, created_at
		FROM history_entries
		WHERE kind = $1
		ORDER BY created_at %s`, order)

	rows, err := s.db.Query(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear removes all entries of the kind
func (s *PostgresStore) Clear(ctx context.Context, kind Kind) error {
	_, err := s.db.Exec(ctx, `DELETE FROM history_entries WHERE kind = $1`, kind)
	return err
}
