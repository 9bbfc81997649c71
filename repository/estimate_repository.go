package repository

import (
	"context"
	"fmt"

	"bidcond-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EstimateRepository handles database operations for estimates
type EstimateRepository struct {
	db *pgxpool.Pool
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *pgxpool.Pool) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// Create creates a new estimate
func (r *EstimateRepository) Create(ctx context.Context, estimate *models.Estimate) error {
	query := `
		INSERT INTO estimates (
			status, project_info, work_type, conditions
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		estimate.Status,
		estimate.ProjectInfo,
		estimate.WorkType,
		estimate.Conditions,
	).Scan(&estimate.ID, &estimate.CreatedAt, &estimate.UpdatedAt)

	return err
}

// GetByID retrieves an estimate by ID
func (r *EstimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Estimate, error) {
	estimate := &models.Estimate{}
	query := `
		SELECT id, status, project_info, work_type, conditions,
			created_at, updated_at, completed_at
		FROM estimates
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&estimate.ID,
		&estimate.Status,
		&estimate.ProjectInfo,
		&estimate.WorkType,
		&estimate.Conditions,
		&estimate.CreatedAt,
		&estimate.UpdatedAt,
		&estimate.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return estimate, nil
}

// Update updates an estimate
func (r *EstimateRepository) Update(ctx context.Context, estimate *models.Estimate) error {
	query := `
		UPDATE estimates SET
			status = $2,
			project_info = $3,
			work_type = $4,
			conditions = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		estimate.ID,
		estimate.Status,
		estimate.ProjectInfo,
		estimate.WorkType,
		estimate.Conditions,
	).Scan(&estimate.UpdatedAt)

	return err
}

// UpdateConditions updates only the persisted selection snapshot
func (r *EstimateRepository) UpdateConditions(ctx context.Context, id uuid.UUID, conditions models.ClauseList) error {
	query := `
		UPDATE estimates SET
			conditions = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, conditions)
	return err
}

// MarkCompleted sets the estimate status to completed and stamps the time
func (r *EstimateRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE estimates SET
			status = $2,
			completed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.StatusCompleted)
	return err
}

// List retrieves estimates, optionally filtered by status
func (r *EstimateRepository) List(ctx context.Context, status *models.EstimateStatus, limit, offset int) ([]*models.Estimate, error) {
	query := `
		SELECT id, status, project_info, work_type, conditions,
			created_at, updated_at, completed_at
		FROM estimates`

	args := []interface{}{}
	argIndex := 1

	if status != nil {
		query += fmt.Sprintf(" WHERE status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estimates []*models.Estimate
	for rows.Next() {
		estimate := &models.Estimate{}
		err := rows.Scan(
			&estimate.ID,
			&estimate.Status,
			&estimate.ProjectInfo,
			&estimate.WorkType,
			&estimate.Conditions,
			&estimate.CreatedAt,
			&estimate.UpdatedAt,
			&estimate.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, estimate)
	}

	return estimates, rows.Err()
}

// Delete deletes an estimate
func (r *EstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM estimates WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
