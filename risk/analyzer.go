// Package risk guards the creation of user-authored clauses behind an
// external risk assessment.
package risk

import (
	"context"
	"strings"

	"bidcond-backend/models"
)

// Analyzer scores a custom clause text. The keyword heuristic is one concrete
// implementation; a real classifier can replace it without touching the gate.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*models.RiskVerdict, error)
}

const (
	unfairKeyword       = "부당특약"
	unfairKeywordShort  = "부당"
	categoryUnfair      = "부당특약"
	categoryGeneral     = "일반사항"
	issueUnfairDetected = "부당특약 발견"
)

// VerdictFromResult derives a verdict from the collaborator's free-text
// result. Presence of an unfair-clause marker scores high; everything else is
// low. The raw result is fed back verbatim as a suggestion.
func VerdictFromResult(result string) *models.RiskVerdict {
	unfair := strings.Contains(result, unfairKeyword) || strings.Contains(result, unfairKeywordShort)

	verdict := &models.RiskVerdict{
		Score:       5,
		Level:       models.RiskLow,
		Category:    categoryGeneral,
		Issues:      []string{},
		Suggestions: []string{result},
	}
	if unfair {
		verdict.Score = 75
		verdict.Level = models.RiskHigh
		verdict.Category = categoryUnfair
		verdict.Issues = []string{issueUnfairDetected}
	}
	return verdict
}
