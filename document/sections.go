package document

import (
	"strings"

	"bidcond-backend/models"
)

// FrontMatterSections is the number of fixed sections preceding the dynamic
// catalog sections. Dynamic section numbering continues from here.
const FrontMatterSections = 5

// GroupSections derives the dynamic document sections from the current
// selection. Catalog clauses are grouped by sub-category, falling back to
// major category and then 기타 when unset. Groups appear in the order their
// first member was selected, numbered from FrontMatterSections+1. Custom
// clauses are excluded; they render inside the fixed 현장 기본조건 section.
func GroupSections(conditions []models.SelectedClause) []models.DocumentSection {
	order := make([]string, 0)
	grouped := make(map[string][]models.SelectedClause)

	for _, c := range conditions {
		if c.Custom {
			continue
		}

		title := sectionTitle(c.Clause)
		if _, ok := grouped[title]; !ok {
			order = append(order, title)
		}
		grouped[title] = append(grouped[title], c)
	}

	sections := make([]models.DocumentSection, 0, len(order))
	for i, title := range order {
		sections = append(sections, models.DocumentSection{
			Title:          title,
			SequenceNumber: FrontMatterSections + 1 + i,
			Conditions:     grouped[title],
		})
	}
	return sections
}

func sectionTitle(c models.Clause) string {
	if s := strings.TrimSpace(c.SubCategory); s != "" {
		return s
	}
	if s := strings.TrimSpace(c.MajorCategory); s != "" {
		return s
	}
	return "기타"
}

// CustomClauses returns the user-authored clauses in selection order
func CustomClauses(conditions []models.SelectedClause) []models.SelectedClause {
	custom := make([]models.SelectedClause, 0)
	for _, c := range conditions {
		if c.Custom {
			custom = append(custom, c)
		}
	}
	return custom
}

// SuppliedMaterials summarizes the work types that are supplied materials
// (공종명 containing 지급), or 미선택 when none are selected
func SuppliedMaterials(conditions []models.SelectedClause) string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, c := range conditions {
		if c.WorkType == "" || !strings.Contains(c.WorkType, "지급") {
			continue
		}
		if seen[c.WorkType] {
			continue
		}
		seen[c.WorkType] = true
		names = append(names, c.WorkType)
	}
	if len(names) == 0 {
		return "미선택"
	}
	return strings.Join(names, ", ")
}
