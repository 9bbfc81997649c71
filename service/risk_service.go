package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"bidcond-backend/history"
	"bidcond-backend/models"
	"bidcond-backend/risk"

	"github.com/google/uuid"
)

// RiskService runs the custom-clause risk workflow. Each estimate gets its
// own gate, so concurrent estimates analyze independently.
type RiskService struct {
	mu    sync.Mutex
	gates map[uuid.UUID]*risk.Gate

	analyzer     risk.Analyzer
	selection    *SelectionService
	historyStore history.Store
}

// RiskServiceOption is a functional option for RiskService
type RiskServiceOption func(*RiskService)

// WithAnalyzer sets the risk analyzer backend
func WithAnalyzer(analyzer risk.Analyzer) RiskServiceOption {
	return func(s *RiskService) {
		s.analyzer = analyzer
	}
}

// WithSelectionService sets the selection service that receives gated
// custom clauses
func WithSelectionService(selection *SelectionService) RiskServiceOption {
	return func(s *RiskService) {
		s.selection = selection
	}
}

// WithHistoryStore sets the analysis history store
func WithHistoryStore(store history.Store) RiskServiceOption {
	return func(s *RiskService) {
		s.historyStore = store
	}
}

// NewRiskService creates a new risk service
func NewRiskService(opts ...RiskServiceOption) *RiskService {
	s := &RiskService{
		gates: make(map[uuid.UUID]*risk.Gate),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RiskService) gate(estimateID uuid.UUID) (*risk.Gate, error) {
	if s.analyzer == nil {
		return nil, errors.New("risk analyzer not set")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[estimateID]
	if !ok {
		g = risk.NewGate(s.analyzer)
		s.gates[estimateID] = g
	}
	return g, nil
}

// AnalyzeRequest represents a request to analyze custom clause text
type AnalyzeRequest struct {
	EstimateID uuid.UUID
	Text       string
}

// AnalyzeResult represents the outcome of a risk analysis
type AnalyzeResult struct {
	Verdict *models.RiskVerdict
}

// Analyze runs the analyzer on the text and stores the verdict in the
// estimate's gate. The analysis is also appended to the history log,
// best-effort.
func (s *RiskService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	g, err := s.gate(req.EstimateID)
	if err != nil {
		return nil, err
	}

	verdict, err := g.Analyze(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	if s.historyStore != nil {
		record := models.AnalysisRecord{
			Text:       req.Text,
			Verdict:    *verdict,
			AnalyzedAt: time.Now(),
		}
		if len(verdict.Suggestions) > 0 {
			record.Result = verdict.Suggestions[0]
		}
		if err := s.historyStore.Append(ctx, history.KindAnalysis, record); err != nil {
			log.Printf("Warning: Failed to save analysis history: %v", err)
		}
	}

	return &AnalyzeResult{Verdict: verdict}, nil
}

// AddCustomRequest represents a request to commit analyzed text as a custom
// clause
type AddCustomRequest struct {
	EstimateID uuid.UUID
	Confirm    bool
	Defaults   risk.CustomDefaults
}

// AddCustomResult represents the committed clause and the verdict it passed
// under
type AddCustomResult struct {
	Clause  *models.Clause
	Verdict *models.RiskVerdict
}

// AddCustom commits the gate's analyzed text into the estimate's selection.
// A blocking verdict requires Confirm; the resulting clause is then marked
// forced.
func (s *RiskService) AddCustom(ctx context.Context, req AddCustomRequest) (*AddCustomResult, error) {
	g, err := s.gate(req.EstimateID)
	if err != nil {
		return nil, err
	}

	clause, verdict, err := g.Add(req.Confirm, req.Defaults)
	if err != nil {
		return nil, err
	}

	if s.selection == nil {
		return nil, errors.New("selection service not set")
	}

	// Keep the gate verdicted until the clause is stored, so a failed
	// persist does not force a re-analysis
	if err := s.selection.AddClause(ctx, req.EstimateID, *clause); err != nil {
		return nil, err
	}
	g.Reset()

	return &AddCustomResult{Clause: clause, Verdict: verdict}, nil
}

// Reset discards the gate state for an estimate
func (s *RiskService) Reset(estimateID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.gates[estimateID]; ok {
		g.Reset()
	}
}

// GateStatus reports the gate state and stored verdict for an estimate
type GateStatus struct {
	State   risk.GateState      `json:"state"`
	Verdict *models.RiskVerdict `json:"verdict,omitempty"`
}

// Status returns the current gate status for an estimate
func (s *RiskService) Status(estimateID uuid.UUID) GateStatus {
	s.mu.Lock()
	g, ok := s.gates[estimateID]
	s.mu.Unlock()

	if !ok {
		return GateStatus{State: risk.GateIdle}
	}
	return GateStatus{State: g.State(), Verdict: g.Verdict()}
}

// History returns the retained analysis records, oldest first
func (s *RiskService) History(ctx context.Context) ([]history.Entry, error) {
	if s.historyStore == nil {
		return nil, errors.New("history store not set")
	}
	return s.historyStore.List(ctx, history.KindAnalysis)
}

// ClearHistory removes all analysis records
func (s *RiskService) ClearHistory(ctx context.Context) error {
	if s.historyStore == nil {
		return errors.New("history store not set")
	}
	return s.historyStore.Clear(ctx, history.KindAnalysis)
}
