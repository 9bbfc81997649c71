package models

import (
	"database/sql/driver"
	"encoding/json"
)

// RiskLevel classifies the outcome of a risk analysis
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Blocking reports whether the level blocks adding a custom clause without
// explicit confirmation
func (l RiskLevel) Blocking() bool {
	return l == RiskHigh || l == RiskCritical
}

// RiskVerdict is the result of analyzing a custom clause text. It is consumed
// exactly once per add attempt and discarded afterwards.
type RiskVerdict struct {
	Score       int       `json:"score"`
	Level       RiskLevel `json:"level"`
	Category    string    `json:"category"`
	Issues      []string  `json:"issues"`
	Suggestions []string  `json:"suggestions"`
}

// Value implements driver.Valuer for JSONB
func (v RiskVerdict) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner for JSONB
func (v *RiskVerdict) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch val := value.(type) {
	case []byte:
		bytes = val
	case string:
		bytes = []byte(val)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, v)
}
