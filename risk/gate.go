package risk

import (
	"context"
	"errors"
	"strings"
	"sync"

	"bidcond-backend/models"
)

// GateState is the lifecycle state of the custom-clause gate
type GateState string

const (
	GateIdle      GateState = "idle"
	GateAnalyzing GateState = "analyzing"
	GateVerdicted GateState = "verdicted"
)

var (
	ErrNoText               = errors.New("분석할 내용을 먼저 입력해 주세요")
	ErrAnalysisRequired     = errors.New("위험도 분석을 먼저 진행해 주세요. 위험도 분석 없이는 조건을 추가할 수 없습니다")
	ErrConfirmationRequired = errors.New("위험도가 높은 조건입니다. 추가하려면 명시적 확인이 필요합니다")
)

// CustomDefaults are the cascade selections used to fill in a custom clause's
// classification fields
type CustomDefaults struct {
	WorkType    string
	Category    string
	SubCategory string
	Tag         string
}

// Gate is the guarded write path for custom clauses: text must be analyzed
// before it can be committed, and a blocking verdict requires explicit
// confirmation. The gate stays verdicted until Reset, which the caller
// issues once the clause has been stored.
type Gate struct {
	mu       sync.Mutex
	analyzer Analyzer

	state   GateState
	text    string
	verdict *models.RiskVerdict
}

// NewGate creates an idle gate using the given analyzer
func NewGate(analyzer Analyzer) *Gate {
	return &Gate{
		analyzer: analyzer,
		state:    GateIdle,
	}
}

// State returns the current gate state
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Verdict returns the stored verdict, or nil when idle
func (g *Gate) Verdict() *models.RiskVerdict {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verdict
}

// Analyze submits the text to the analyzer and stores the verdict. A second
// request while one is in flight is not prevented; the last verdict to
// resolve wins. On failure the gate reverts to idle and the error is
// surfaced to the caller.
func (g *Gate) Analyze(ctx context.Context, text string) (*models.RiskVerdict, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoText
	}

	g.mu.Lock()
	g.state = GateAnalyzing
	g.mu.Unlock()

	verdict, err := g.analyzer.Analyze(ctx, text)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = GateIdle
		g.verdict = nil
		return nil, err
	}

	g.state = GateVerdicted
	g.text = text
	g.verdict = verdict
	return verdict, nil
}

// Add builds a custom clause from the analyzed text. Medium verdicts are
// added with a non-blocking warning carried in the returned verdict; high and
// critical verdicts require confirm=true and mark the clause as forced. The
// gate keeps its verdict until Reset, so the caller can retry when storing
// the clause fails.
func (g *Gate) Add(confirm bool, defaults CustomDefaults) (*models.Clause, *models.RiskVerdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.verdict == nil || g.text == "" {
		return nil, nil, ErrAnalysisRequired
	}

	blocking := g.verdict.Level.Blocking()
	if blocking && !confirm {
		return nil, nil, ErrConfirmationRequired
	}

	forced := blocking && confirm

	workType := defaults.WorkType
	if workType == "" {
		workType = "사용자 정의"
	}
	category := defaults.Category
	if category == "" {
		category = "기타"
	}
	subCategory := defaults.SubCategory
	if subCategory == "" {
		subCategory = "기타"
	}
	tag := defaults.Tag
	if tag == "" {
		tag = "사용자정의"
	}

	importance := models.ImportanceNormal
	if forced {
		importance = models.ImportanceImportant
	}

	clause := &models.Clause{
		WorkType:      workType,
		WorkTypeCode:  models.WorkTypeCodeCustom,
		MajorCategory: category,
		Detail:        g.text,
		SubCategory:   subCategory,
		Tag:           tag,
		Text:          g.text,
		Importance:    importance,
		Custom:        true,
		Forced:        forced,
	}

	verdict := *g.verdict
	return clause, &verdict, nil
}

// Reset clears the stored verdict and input text and returns the gate to idle
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

func (g *Gate) reset() {
	g.state = GateIdle
	g.text = ""
	g.verdict = nil
}
