package repository

import (
	"context"

	"bidcond-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttachmentRepository handles database operations for image attachments
type AttachmentRepository struct {
	db *pgxpool.Pool
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create creates a new attachment record
func (r *AttachmentRepository) Create(ctx context.Context, att *models.ImageAttachment) error {
	query := `
		INSERT INTO attachments (
			estimate_id, clause_key, filename, mime_type, size, storage_path
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		att.EstimateID,
		att.ClauseKey,
		att.Filename,
		att.MimeType,
		att.Size,
		att.StoragePath,
	).Scan(&att.ID, &att.CreatedAt)

	return err
}

// GetByID retrieves an attachment by ID
func (r *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ImageAttachment, error) {
	att := &models.ImageAttachment{}
	query := `
		SELECT id, estimate_id, clause_key, filename, mime_type, size, storage_path, created_at
		FROM attachments
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&att.ID,
		&att.EstimateID,
		&att.ClauseKey,
		&att.Filename,
		&att.MimeType,
		&att.Size,
		&att.StoragePath,
		&att.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return att, nil
}

// ListByEstimateID retrieves all attachments for an estimate
func (r *AttachmentRepository) ListByEstimateID(ctx context.Context, estimateID uuid.UUID) ([]*models.ImageAttachment, error) {
	query := `
		SELECT id, estimate_id, clause_key, filename, mime_type, size, storage_path, created_at
		FROM attachments
		WHERE estimate_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, estimateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.ImageAttachment
	for rows.Next() {
		att := &models.ImageAttachment{}
		err := rows.Scan(
			&att.ID,
			&att.EstimateID,
			&att.ClauseKey,
			&att.Filename,
			&att.MimeType,
			&att.Size,
			&att.StoragePath,
			&att.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}

	return attachments, rows.Err()
}

// Delete deletes an attachment record
func (r *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM attachments WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
