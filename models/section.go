package models

// DocumentSection is a named, numbered group of selected clauses in the
// assembled document. Sections are derived from the selection set on every
// change and never mutated directly.
type DocumentSection struct {
	Title          string           `json:"title"`
	SequenceNumber int              `json:"sequence_number"`
	Conditions     []SelectedClause `json:"conditions"`
}
