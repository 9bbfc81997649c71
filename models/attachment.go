package models

import (
	"time"

	"github.com/google/uuid"
)

// ImageAttachment represents an image uploaded for a specific clause. The
// attachment is destroyed when removed explicitly or when the owning clause
// leaves the selection set.
type ImageAttachment struct {
	ID          uuid.UUID `json:"id"`
	EstimateID  uuid.UUID `json:"estimate_id"`
	ClauseKey   string    `json:"clause_key"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
