package parser

import (
	"strings"

	"bidcond-backend/models"
)

// The query functions are pure and O(n) over the catalog so they are safe to
// recompute on every request.

// WorkTypes returns the distinct work types in first-seen order
func WorkTypes(clauses []models.Clause) []string {
	return distinct(clauses, func(c models.Clause) string { return c.WorkType }, nil)
}

// SearchWorkTypes returns the work types whose name contains the term,
// case-insensitively. An empty term returns all work types.
func SearchWorkTypes(clauses []models.Clause, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	workTypes := WorkTypes(clauses)
	if term == "" {
		return workTypes
	}

	matched := make([]string, 0, len(workTypes))
	for _, wt := range workTypes {
		if strings.Contains(strings.ToLower(wt), term) {
			matched = append(matched, wt)
		}
	}
	return matched
}

// Categories returns the distinct major categories for a work type
func Categories(clauses []models.Clause, workType string) []string {
	return distinct(clauses, func(c models.Clause) string { return c.MajorCategory }, func(c models.Clause) bool {
		return c.WorkType == workType
	})
}

// SubCategories returns the distinct sub categories under the cascade
func SubCategories(clauses []models.Clause, workType, category string) []string {
	return distinct(clauses, func(c models.Clause) string { return c.SubCategory }, func(c models.Clause) bool {
		return c.WorkType == workType && c.MajorCategory == category
	})
}

// Tags returns the distinct tags under the cascade
func Tags(clauses []models.Clause, workType, category, subCategory string) []string {
	return distinct(clauses, func(c models.Clause) string { return c.Tag }, func(c models.Clause) bool {
		return c.WorkType == workType && c.MajorCategory == category && c.SubCategory == subCategory
	})
}

// FilteredClauses returns the rows matching the full cascade. Empty filter
// values match everything at that level.
func FilteredClauses(clauses []models.Clause, workType, category, subCategory, tag string) []models.Clause {
	filtered := make([]models.Clause, 0)
	for _, c := range clauses {
		if workType != "" && c.WorkType != workType {
			continue
		}
		if category != "" && c.MajorCategory != category {
			continue
		}
		if subCategory != "" && c.SubCategory != subCategory {
			continue
		}
		if tag != "" && c.Tag != tag {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func distinct(clauses []models.Clause, value func(models.Clause) string, match func(models.Clause) bool) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, c := range clauses {
		if match != nil && !match(c) {
			continue
		}
		v := value(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
