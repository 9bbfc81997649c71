// Package history persists capped, append-only activity logs. Each kind of
// log keeps its own cap and retention direction: export history keeps the
// newest entries first, analysis history drops the oldest when full.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies one history log
type Kind string

const (
	KindExport   Kind = "pdf-export-history"
	KindAnalysis Kind = "risk-analysis-history"
)

// caps per kind; appends beyond the cap evict from the opposite end
const (
	exportCap   = 20
	analysisCap = 10
)

// Cap returns the retention limit for the kind. Unknown kinds get the
// smaller limit.
func (k Kind) Cap() int {
	if k == KindExport {
		return exportCap
	}
	return analysisCap
}

// NewestFirst reports whether the kind lists and retains newest entries
// first. Export history does; analysis history is chronological.
func (k Kind) NewestFirst() bool {
	return k == KindExport
}

// Entry is one stored history record with an opaque payload
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store persists history entries. History writes are best-effort for
// callers: a failed append never fails the operation that produced it.
type Store interface {
	// Append records a payload under the kind, evicting entries beyond the
	// kind's cap
	Append(ctx context.Context, kind Kind, payload interface{}) error

	// List returns the retained entries in the kind's listing order
	List(ctx context.Context, kind Kind) ([]Entry, error)

	// Clear removes all entries of the kind
	Clear(ctx context.Context, kind Kind) error
}
