package repository

import (
	"context"
	"fmt"

	"bidcond-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClauseRepository handles database operations for the clause catalog
type ClauseRepository struct {
	db *pgxpool.Pool
}

// NewClauseRepository creates a new clause repository
func NewClauseRepository(db *pgxpool.Pool) *ClauseRepository {
	return &ClauseRepository{db: db}
}

// ReplaceAll swaps the whole catalog for the given clauses in one
// transaction, preserving source order via the position column
func (r *ClauseRepository) ReplaceAll(ctx context.Context, clauses []models.Clause) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM clause_catalog`); err != nil {
		return err
	}

	query := `
		INSERT INTO clause_catalog (
			position, work_type, work_type_code, major_category, detail,
			sub_category, tag, text, importance, image_ref
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	batch := &pgx.Batch{}
	for i, c := range clauses {
		batch.Queue(query,
			i,
			c.WorkType,
			c.WorkTypeCode,
			c.MajorCategory,
			c.Detail,
			c.SubCategory,
			c.Tag,
			c.Text,
			c.Importance,
			c.ImageRef,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range clauses {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert catalog clause: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListAll retrieves the full catalog in source order
func (r *ClauseRepository) ListAll(ctx context.Context) ([]models.Clause, error) {
	query := `
		SELECT work_type, work_type_code, major_category, detail,
			sub_category, tag, text, importance, image_ref
		FROM clause_catalog
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clauses := make([]models.Clause, 0)
	for rows.Next() {
		var c models.Clause
		err := rows.Scan(
			&c.WorkType,
			&c.WorkTypeCode,
			&c.MajorCategory,
			&c.Detail,
			&c.SubCategory,
			&c.Tag,
			&c.Text,
			&c.Importance,
			&c.ImageRef,
		)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}

	return clauses, rows.Err()
}

// Count returns the number of catalog clauses
func (r *ClauseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clause_catalog`).Scan(&count)
	return count, err
}
