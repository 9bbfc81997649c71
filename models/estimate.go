package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EstimateStatus represents the status of an estimate document
type EstimateStatus string

const (
	StatusDraft      EstimateStatus = "draft"
	StatusInProgress EstimateStatus = "in_progress"
	StatusCompleted  EstimateStatus = "completed"
	StatusArchived   EstimateStatus = "archived"
)

// ProjectInfo holds the project fields rendered into the document header and
// front-matter sections
type ProjectInfo struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Client       string `json:"client"`
	Summary      string `json:"summary"`
	ProjectType  string `json:"project_type"`
	DetailedType string `json:"detailed_type"`

	// Percentages, clamped to [0,100]
	ExemptionRate   float64 `json:"exemption_rate"`
	OrderVolumeRate float64 `json:"order_volume_rate"`

	ContactRole  string `json:"contact_role,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	DocsURL      string `json:"docs_url,omitempty"`
	DocsPassword string `json:"docs_password,omitempty"`
}

// ClampRates forces the rate fields into [0,100]
func (p *ProjectInfo) ClampRates() {
	p.ExemptionRate = clampPercent(p.ExemptionRate)
	p.OrderVolumeRate = clampPercent(p.OrderVolumeRate)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Value implements driver.Valuer for JSONB
func (p ProjectInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *ProjectInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Estimate represents a bid-condition document being assembled
type Estimate struct {
	ID          uuid.UUID      `json:"id"`
	Status      EstimateStatus `json:"status"`
	ProjectInfo ProjectInfo    `json:"project_info"`

	// WorkType is the work type chosen in the selection cascade
	WorkType string `json:"work_type"`

	// Conditions is the persisted snapshot of the selection set
	Conditions ClauseList `json:"conditions"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
