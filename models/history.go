package models

import (
	"time"
)

// ExportRecord is the opaque history entry saved after each export
type ExportRecord struct {
	ProjectName    string        `json:"project_name"`
	WorkType       string        `json:"work_type"`
	Filename       string        `json:"filename"`
	Options        ExportOptions `json:"options"`
	ConditionCount int           `json:"condition_count"`
	ExportedAt     time.Time     `json:"exported_at"`
}

// AnalysisRecord is the history entry saved after each risk analysis
type AnalysisRecord struct {
	Text       string      `json:"text"`
	Verdict    RiskVerdict `json:"analysis"`
	Result     string      `json:"result"`
	AnalyzedAt time.Time   `json:"timestamp"`
}
