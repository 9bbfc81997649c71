package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PageFormat represents the paper size of an exported document
type PageFormat string

const (
	PageA4     PageFormat = "a4"
	PageLetter PageFormat = "letter"
)

// Orientation represents the page orientation
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Template represents the export layout template
type Template string

const (
	TemplateStandard Template = "standard"
	TemplateCompact  Template = "compact"
	TemplateDetailed Template = "detailed"
)

// ExportOptions configures the print-document rendering. Numeric fields are
// clamped into their ranges, never rejected.
type ExportOptions struct {
	Format           PageFormat  `json:"format"`
	Orientation      Orientation `json:"orientation"`
	MarginInches     float64     `json:"margin"`
	ImageQuality     float64     `json:"quality"`
	Template         Template    `json:"template"`
	IncludeHeader    bool        `json:"include_header"`
	IncludeFooter    bool        `json:"include_footer"`
	IncludeWatermark bool        `json:"include_watermark"`
}

// DefaultExportOptions returns the default export configuration
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:           PageA4,
		Orientation:      OrientationPortrait,
		MarginInches:     1.0,
		ImageQuality:     0.98,
		Template:         TemplateStandard,
		IncludeHeader:    true,
		IncludeFooter:    true,
		IncludeWatermark: false,
	}
}

// Normalize clamps numeric fields into their closed ranges and fills unset
// enum fields with defaults
func (o *ExportOptions) Normalize() {
	switch o.Format {
	case PageA4, PageLetter:
	default:
		o.Format = PageA4
	}
	switch o.Orientation {
	case OrientationPortrait, OrientationLandscape:
	default:
		o.Orientation = OrientationPortrait
	}
	switch o.Template {
	case TemplateStandard, TemplateCompact, TemplateDetailed:
	default:
		o.Template = TemplateStandard
	}
	o.MarginInches = clampRange(o.MarginInches, 0.5, 2.0)
	o.ImageQuality = clampRange(o.ImageQuality, 0.5, 1.0)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Value implements driver.Valuer for JSONB
func (o ExportOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner for JSONB
func (o *ExportOptions) Scan(value interface{}) error {
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

	return json.Unmarshal(bytes, o)
}

// ExportData is everything the export pipeline needs to produce a document
type ExportData struct {
	ProjectInfo ProjectInfo      `json:"project_info"`
	WorkType    string           `json:"work_type"`
	Conditions  []SelectedClause `json:"conditions"`
	Options     ExportOptions    `json:"options"`
	Timestamp   time.Time        `json:"timestamp"`
}

// ExportValidation collects validation messages so a caller can display all
// problems at once
type ExportValidation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateExportData checks the essential fields. An empty condition list is
// allowed; only the project name is required.
func ValidateExportData(data ExportData) ExportValidation {
	errors := make([]string, 0)

	if strings.TrimSpace(data.ProjectInfo.Name) == "" {
		errors = append(errors, "현장명을 입력해주세요.")
	}

	return ExportValidation{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

// ExportFileName builds the document file name from the project name, the
// template, and the export date
func ExportFileName(info ProjectInfo, template Template, at time.Time) string {
	projectName := strings.TrimSpace(info.Name)
	if projectName == "" {
		projectName = "견적조건서"
	}

	templateSuffix := ""
	if template != TemplateStandard && template != "" {
		templateSuffix = fmt.Sprintf("_%s", template)
	}

	return fmt.Sprintf("%s_견적조건서%s_%s.html", projectName, templateSuffix, at.Format("2006-01-02"))
}
