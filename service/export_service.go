package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"bidcond-backend/document"
	"bidcond-backend/history"
	"bidcond-backend/models"
	"bidcond-backend/storage"

	"github.com/google/uuid"
)

// ErrExportInvalid is returned when the export data fails validation. The
// accompanying result carries the individual messages.
var ErrExportInvalid = errors.New("내보내기 데이터가 유효하지 않습니다")

// DocumentSource supplies the preview region and estimate backing an export.
// SelectionService implements it; tests substitute fakes.
type DocumentSource interface {
	Region(ctx context.Context, estimateID uuid.UUID) (*document.Region, error)
	Estimate(ctx context.Context, estimateID uuid.UUID) (*models.Estimate, error)
}

// ProgressFunc receives pipeline progress in percent
type ProgressFunc func(progress int)

// ExportService assembles the final print document from the live preview
// region. The region is mutated in place during the pipeline and restored
// when it finishes, successfully or not.
type ExportService struct {
	source       DocumentSource
	store        storage.Storage
	historyStore history.Store
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// WithDocumentSource sets the preview source
func WithDocumentSource(source DocumentSource) ExportServiceOption {
	return func(s *ExportService) {
		s.source = source
	}
}

// ExportWithStorage sets the document storage backend
func ExportWithStorage(store storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.store = store
	}
}

// ExportWithHistoryStore sets the export history store
func ExportWithHistoryStore(store history.Store) ExportServiceOption {
	return func(s *ExportService) {
		s.historyStore = store
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportRequest represents a request to export an estimate document
type ExportRequest struct {
	EstimateID uuid.UUID
	Options    models.ExportOptions
	OnProgress ProgressFunc
}

// ExportResult represents the produced document
type ExportResult struct {
	Filename    string                  `json:"filename"`
	StoragePath string                  `json:"storage_path"`
	Document    string                  `json:"-"`
	Validation  models.ExportValidation `json:"validation"`
}

// Export runs the print pipeline: validate, normalize the preview markup,
// wrap it into a self-printing document, store it, and record the export.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if s.source == nil {
		return nil, errors.New("document source not set")
	}

	progress := req.OnProgress
	if progress == nil {
		progress = func(int) {}
	}

	estimate, err := s.source.Estimate(ctx, req.EstimateID)
	if err != nil {
		return nil, err
	}

	opts := req.Options
	opts.Normalize()

	data := models.ExportData{
		ProjectInfo: estimate.ProjectInfo,
		WorkType:    estimate.WorkType,
		Conditions:  estimate.Conditions,
		Options:     opts,
		Timestamp:   time.Now(),
	}

	validation := models.ValidateExportData(data)
	if !validation.IsValid {
		return &ExportResult{Validation: validation}, ErrExportInvalid
	}

	progress(10)

	region, err := s.source.Region(ctx, req.EstimateID)
	if err != nil {
		return nil, err
	}

	snapshot, err := region.Acquire()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	if err := snapshot.Mutate(document.NormalizeMarkup); err != nil {
		return nil, err
	}

	progress(50)

	doc := document.BuildPrintDocument(snapshot.Markup(), data)
	filename := models.ExportFileName(data.ProjectInfo, opts.Template, data.Timestamp)

	storagePath := ""
	if s.store != nil {
		storagePath, err = s.store.Upload(ctx, uuid.New(), filename, strings.NewReader(doc))
		if err != nil {
			return nil, err
		}
	}

	progress(90)

	if s.historyStore != nil {
		record := models.ExportRecord{
			ProjectName:    data.ProjectInfo.Name,
			WorkType:       data.WorkType,
			Filename:       filename,
			Options:        opts,
			ConditionCount: len(data.Conditions),
			ExportedAt:     data.Timestamp,
		}
		if err := s.historyStore.Append(ctx, history.KindExport, record); err != nil {
			log.Printf("Warning: Failed to save export history: %v", err)
		}
	}

	progress(100)

	return &ExportResult{
		Filename:    filename,
		StoragePath: storagePath,
		Document:    doc,
		Validation:  validation,
	}, nil
}

// History returns the retained export records, newest first
func (s *ExportService) History(ctx context.Context) ([]history.Entry, error) {
	if s.historyStore == nil {
		return nil, errors.New("history store not set")
	}
	return s.historyStore.List(ctx, history.KindExport)
}

// ClearHistory removes all export records
func (s *ExportService) ClearHistory(ctx context.Context) error {
	if s.historyStore == nil {
		return errors.New("history store not set")
	}
	return s.historyStore.Clear(ctx, history.KindExport)
}
