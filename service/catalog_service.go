package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"bidcond-backend/models"
	"bidcond-backend/parser"
	"bidcond-backend/repository"
)

// ErrCatalogNotLoaded is returned when a catalog query runs before any
// catalog has been loaded
var ErrCatalogNotLoaded = errors.New("clause catalog not loaded")

// CatalogService loads the clause catalog and answers cascade queries
// against an in-memory copy. Reloading invalidates every live selection, so
// the reload listener lets the selection layer reset itself.
type CatalogService struct {
	mu      sync.RWMutex
	clauses []models.Clause

	clauseRepo *repository.ClauseRepository
	sourceURL  string
	httpClient *http.Client

	onReload func()
}

// CatalogServiceOption is a functional option for CatalogService
type CatalogServiceOption func(*CatalogService)

// WithClauseRepository sets the catalog repository
func WithClauseRepository(repo *repository.ClauseRepository) CatalogServiceOption {
	return func(s *CatalogService) {
		s.clauseRepo = repo
	}
}

// WithCatalogURL sets the remote CSV source
func WithCatalogURL(url string) CatalogServiceOption {
	return func(s *CatalogService) {
		s.sourceURL = url
	}
}

// WithReloadListener sets the callback invoked after every successful reload
func WithReloadListener(fn func()) CatalogServiceOption {
	return func(s *CatalogService) {
		s.onReload = fn
	}
}

// NewCatalogService creates a new catalog service
func NewCatalogService(opts ...CatalogServiceOption) *CatalogService {
	s := &CatalogService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates the in-memory catalog, preferring the remote CSV source and
// falling back to the database copy
func (s *CatalogService) Load(ctx context.Context) error {
	if s.sourceURL != "" {
		if err := s.loadFromURL(ctx); err != nil {
			log.Printf("Warning: Failed to load catalog from %s: %v. Falling back to database.", s.sourceURL, err)
		} else {
			return nil
		}
	}

	if s.clauseRepo == nil {
		return errors.New("no catalog source configured")
	}

	clauses, err := s.clauseRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog from database: %w", err)
	}

	s.install(clauses)
	return nil
}

// Reload re-fetches the catalog and fires the reload listener. Existing
// selections reference clauses that may no longer exist, so the listener is
// expected to clear them.
func (s *CatalogService) Reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	if s.onReload != nil {
		s.onReload()
	}
	return nil
}

func (s *CatalogService) loadFromURL(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog source returned status %d", resp.StatusCode)
	}

	clauses, err := parser.ParseCatalog(resp.Body)
	if err != nil {
		return err
	}

	s.install(clauses)

	// Persist the fetched copy so the database fallback stays current
	if s.clauseRepo != nil {
		if err := s.clauseRepo.ReplaceAll(ctx, clauses); err != nil {
			log.Printf("Warning: Failed to persist catalog to database: %v", err)
		}
	}

	return nil
}

func (s *CatalogService) install(clauses []models.Clause) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clauses = clauses
	log.Printf("Catalog loaded: %d clauses", len(clauses))
}

// Clauses returns the loaded catalog
func (s *CatalogService) Clauses() ([]models.Clause, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clauses == nil {
		return nil, ErrCatalogNotLoaded
	}
	return s.clauses, nil
}

// WorkTypes lists the distinct work types, optionally filtered by a
// case-insensitive search term
func (s *CatalogService) WorkTypes(term string) ([]string, error) {
	clauses, err := s.Clauses()
	if err != nil {
		return nil, err
	}
	if term == "" {
		return parser.WorkTypes(clauses), nil
	}
	return parser.SearchWorkTypes(clauses, term), nil
}

// Categories lists the major categories under a work type
func (s *CatalogService) Categories(workType string) ([]string, error) {
	clauses, err := s.Clauses()
	if err != nil {
		return nil, err
	}
	return parser.Categories(clauses, workType), nil
}

// SubCategories lists the sub-categories under a work type and category
func (s *CatalogService) SubCategories(workType, category string) ([]string, error) {
	clauses, err := s.Clauses()
	if err != nil {
		return nil, err
	}
	return parser.SubCategories(clauses, workType, category), nil
}

// Tags lists the tags under the given cascade path
func (s *CatalogService) Tags(workType, category, subCategory string) ([]string, error) {
	clauses, err := s.Clauses()
	if err != nil {
		return nil, err
	}
	return parser.Tags(clauses, workType, category, subCategory), nil
}

// Filtered returns the clauses visible under the cascade
func (s *CatalogService) Filtered(c parser.Cascade) ([]models.Clause, error) {
	clauses, err := s.Clauses()
	if err != nil {
		return nil, err
	}
	return c.Apply(clauses), nil
}
