package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Importance represents the importance marker of a clause
type Importance string

const (
	ImportanceNormal    Importance = "일반"
	ImportanceImportant Importance = "중요"
)

// WorkTypeCodeCustom is the work-type code assigned to user-authored clauses
const WorkTypeCodeCustom = "CUSTOM"

// Clause represents a single contract condition, either catalog-sourced or
// user-authored
type Clause struct {
	WorkType      string     `json:"work_type"`
	WorkTypeCode  string     `json:"work_type_code"`
	MajorCategory string     `json:"major_category"`
	Detail        string     `json:"detail"`
	SubCategory   string     `json:"sub_category"`
	Tag           string     `json:"tag"`
	Text          string     `json:"text"`
	Importance    Importance `json:"importance"`
	ImageRef      string     `json:"image_ref,omitempty"`

	// Custom marks user-authored clauses; Forced marks custom clauses added
	// despite a high/critical risk verdict
	Custom bool `json:"custom,omitempty"`
	Forced bool `json:"forced,omitempty"`
}

// ClauseKey is the identity of a clause for selection membership and
// attachment lookup. The pair must be unique within a selection set.
type ClauseKey struct {
	WorkTypeCode string `json:"work_type_code"`
	Text         string `json:"text"`
}

// Key returns the identity key of the clause
func (c Clause) Key() ClauseKey {
	return ClauseKey{WorkTypeCode: c.WorkTypeCode, Text: c.Text}
}

// Important reports whether the clause carries the important marker
func (c Clause) Important() bool {
	return c.Importance == ImportanceImportant
}

// String renders the key in the form used to index attachments
func (k ClauseKey) String() string {
	return k.WorkTypeCode + "-" + k.Text
}

// SelectedClause is a clause annotated with its attached images, as handed to
// the document assembly layer on every selection change
type SelectedClause struct {
	Clause
	Attachments []ImageAttachment `json:"attachments,omitempty"`
}

// ClauseList represents the persisted selection snapshot of an estimate
type ClauseList []SelectedClause

// Value implements driver.Valuer for JSONB
func (l ClauseList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *ClauseList) Scan(value interface{}) error {
	if value == nil {
		*l = make(ClauseList, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*l = make(ClauseList, 0)
		return nil
	}

	if len(bytes) == 0 {
		*l = make(ClauseList, 0)
		return nil
	}

	return json.Unmarshal(bytes, l)
}
