package parser

import (
	"fmt"

	"bidcond-backend/models"
)

// Level enumerates the four dependent filter levels
type Level int

const (
	LevelWorkType Level = iota
	LevelCategory
	LevelSubCategory
	LevelTag
)

// ParseLevel maps the wire name of a filter level
func ParseLevel(name string) (Level, error) {
	switch name {
	case "work_type":
		return LevelWorkType, nil
	case "category":
		return LevelCategory, nil
	case "sub_category":
		return LevelSubCategory, nil
	case "tag":
		return LevelTag, nil
	default:
		return 0, fmt.Errorf("unknown filter level: %s", name)
	}
}

// Cascade holds the current value at each filter level. Selecting a value at
// level k resets every level below it: downstream option lists are only valid
// for the selected upstream path.
type Cascade struct {
	WorkType    string `json:"work_type"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	Tag         string `json:"tag"`
}

// Select sets the value at a level and clears all deeper levels. Selecting an
// empty work type clears the entire cascade.
func (c *Cascade) Select(level Level, value string) {
	switch level {
	case LevelWorkType:
		c.WorkType = value
		c.Category = ""
		c.SubCategory = ""
		c.Tag = ""
	case LevelCategory:
		c.Category = value
		c.SubCategory = ""
		c.Tag = ""
	case LevelSubCategory:
		c.SubCategory = value
		c.Tag = ""
	case LevelTag:
		c.Tag = value
	}
}

// Clear resets every level
func (c *Cascade) Clear() {
	c.Select(LevelWorkType, "")
}

// Apply returns the clauses visible under the cascade
func (c Cascade) Apply(clauses []models.Clause) []models.Clause {
	return FilteredClauses(clauses, c.WorkType, c.Category, c.SubCategory, c.Tag)
}
