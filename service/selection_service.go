package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"bidcond-backend/document"
	"bidcond-backend/models"
	"bidcond-backend/parser"
	"bidcond-backend/repository"
	"bidcond-backend/selection"
	"bidcond-backend/storage"

	"github.com/google/uuid"
)

// MaxImageSize is the per-file upload limit for clause images
const MaxImageSize = 5 << 20

var (
	// ErrNotSelected is returned when images target a clause outside the
	// selection
	ErrNotSelected = errors.New("clause is not selected")

	// ErrImageTooLarge rejects uploads over MaxImageSize
	ErrImageTooLarge = errors.New("이미지 크기는 5MB를 초과할 수 없습니다")

	// ErrNotAnImage rejects non-image uploads
	ErrNotAnImage = errors.New("이미지 파일만 업로드할 수 있습니다")
)

// session is the per-estimate working state: the selection set, the filter
// cascade, and the live preview region
type session struct {
	estimate *models.Estimate
	set      *selection.Set
	cascade  parser.Cascade
	region   *document.Region
}

// SelectionService owns the per-estimate selection sessions. Every mutation
// synchronously re-renders the preview region and persists the selection
// snapshot, so the document is always a pure projection of the set.
type SelectionService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	catalog        *CatalogService
	estimateRepo   *repository.EstimateRepository
	attachmentRepo *repository.AttachmentRepository
	store          storage.Storage
}

// SelectionServiceOption is a functional option for SelectionService
type SelectionServiceOption func(*SelectionService)

// WithCatalogService sets the catalog service
func WithCatalogService(catalog *CatalogService) SelectionServiceOption {
	return func(s *SelectionService) {
		s.catalog = catalog
	}
}

// SelectionWithEstimateRepository sets the estimate repository
func SelectionWithEstimateRepository(repo *repository.EstimateRepository) SelectionServiceOption {
	return func(s *SelectionService) {
		s.estimateRepo = repo
	}
}

// WithAttachmentRepository sets the attachment repository
func WithAttachmentRepository(repo *repository.AttachmentRepository) SelectionServiceOption {
	return func(s *SelectionService) {
		s.attachmentRepo = repo
	}
}

// WithStorage sets the file storage backend
func WithStorage(store storage.Storage) SelectionServiceOption {
	return func(s *SelectionService) {
		s.store = store
	}
}

// NewSelectionService creates a new selection service
func NewSelectionService(opts ...SelectionServiceOption) *SelectionService {
	s := &SelectionService{
		sessions: make(map[uuid.UUID]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getSession returns the working session for an estimate, restoring the
// selection set from the persisted snapshot on first access
func (s *SelectionService) getSession(ctx context.Context, estimateID uuid.UUID) (*session, error) {
	if sess, ok := s.sessions[estimateID]; ok {
		return sess, nil
	}

	if s.estimateRepo == nil {
		return nil, errors.New("estimate repository not set")
	}

	estimate, err := s.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		estimate: estimate,
		set:      selection.New(),
		region:   document.NewRegion(),
	}
	sess.cascade.Select(parser.LevelWorkType, estimate.WorkType)

	sess.set.SetOnChange(func(current []models.SelectedClause) {
		s.renderRegion(sess, current)
	})

	for _, c := range estimate.Conditions {
		sess.set.Add(c.Clause)
		for _, att := range c.Attachments {
			sess.set.Attach(att)
		}
	}
	s.renderRegion(sess, sess.set.Snapshot())

	s.sessions[estimateID] = sess
	return sess, nil
}

// renderRegion rebuilds the preview markup from the current selection. A
// render failure keeps the previous markup and is only logged; the selection
// itself is already mutated.
func (s *SelectionService) renderRegion(sess *session, current []models.SelectedClause) {
	markup, err := document.RenderPreview(document.PreviewInput{
		ProjectInfo: sess.estimate.ProjectInfo,
		WorkType:    sess.cascade.WorkType,
		Conditions:  current,
		RenderedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("Warning: Failed to render preview for estimate %s: %v", sess.estimate.ID, err)
		return
	}
	sess.region.SetMarkup(markup)
}

// persist writes the selection snapshot back to the estimate record
func (s *SelectionService) persist(ctx context.Context, sess *session) error {
	snapshot := models.ClauseList(sess.set.Snapshot())
	sess.estimate.Conditions = snapshot
	return s.estimateRepo.UpdateConditions(ctx, sess.estimate.ID, snapshot)
}

// destroyAttachments removes orphaned attachment payloads and records.
// Failures are logged, not surfaced: the selection change already happened.
func (s *SelectionService) destroyAttachments(ctx context.Context, orphaned []models.ImageAttachment) {
	for _, att := range orphaned {
		if s.store != nil {
			if err := s.store.Delete(ctx, att.StoragePath); err != nil {
				log.Printf("Warning: Failed to delete attachment payload %s: %v", att.StoragePath, err)
			}
		}
		if s.attachmentRepo != nil {
			if err := s.attachmentRepo.Delete(ctx, att.ID); err != nil {
				log.Printf("Warning: Failed to delete attachment record %s: %v", att.ID, err)
			}
		}
	}
}

// Toggle flips a clause in or out of the selection. It returns whether the
// clause is selected afterwards.
func (s *SelectionService) Toggle(ctx context.Context, estimateID uuid.UUID, clause models.Clause) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return false, err
	}

	selected := true
	if sess.set.Contains(clause) {
		orphaned := sess.set.Remove(clause)
		s.destroyAttachments(ctx, orphaned)
		selected = false
	} else {
		sess.set.Add(clause)
	}

	return selected, s.persist(ctx, sess)
}

// AddClause adds a clause to the selection, typically a gated custom clause.
// Duplicates are ignored.
func (s *SelectionService) AddClause(ctx context.Context, estimateID uuid.UUID, clause models.Clause) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return err
	}

	sess.set.Add(clause)
	return s.persist(ctx, sess)
}

// Remove deletes a clause from the selection and destroys its attachments
func (s *SelectionService) Remove(ctx context.Context, estimateID uuid.UUID, clause models.Clause) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return err
	}

	orphaned := sess.set.Remove(clause)
	s.destroyAttachments(ctx, orphaned)
	return s.persist(ctx, sess)
}

// Clear empties the selection and destroys all attachments
func (s *SelectionService) Clear(ctx context.Context, estimateID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return err
	}

	orphaned := sess.set.Clear()
	s.destroyAttachments(ctx, orphaned)
	return s.persist(ctx, sess)
}

// ToggleAll selects or deselects the currently visible filtered view. When
// every visible clause is already selected, exactly those clauses leave the
// selection; clauses outside the view are untouched.
func (s *SelectionService) ToggleAll(ctx context.Context, estimateID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return false, err
	}

	view, err := s.catalog.Filtered(sess.cascade)
	if err != nil {
		return false, err
	}

	selected, orphaned := sess.set.ToggleAll(view)
	s.destroyAttachments(ctx, orphaned)
	return selected, s.persist(ctx, sess)
}

// FilterState describes the cascade and the options available at each level
type FilterState struct {
	Cascade       parser.Cascade  `json:"cascade"`
	WorkTypes     []string        `json:"work_types"`
	Categories    []string        `json:"categories"`
	SubCategories []string        `json:"sub_categories"`
	Tags          []string        `json:"tags"`
	Clauses       []models.Clause `json:"clauses"`
	Selected      []bool          `json:"selected"`
}

// SetFilter selects a value at a cascade level, clearing deeper levels, and
// returns the refreshed filter state
func (s *SelectionService) SetFilter(ctx context.Context, estimateID uuid.UUID, level parser.Level, value string) (*FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	sess.cascade.Select(level, value)

	if level == parser.LevelWorkType {
		sess.estimate.WorkType = value
		if err := s.estimateRepo.Update(ctx, sess.estimate); err != nil {
			return nil, err
		}
		s.renderRegion(sess, sess.set.Snapshot())
	}

	return s.filterState(sess)
}

// Filters returns the current cascade state without changing it
func (s *SelectionService) Filters(ctx context.Context, estimateID uuid.UUID) (*FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	return s.filterState(sess)
}

func (s *SelectionService) filterState(sess *session) (*FilterState, error) {
	c := sess.cascade

	workTypes, err := s.catalog.WorkTypes("")
	if err != nil {
		return nil, err
	}
	categories, err := s.catalog.Categories(c.WorkType)
	if err != nil {
		return nil, err
	}
	subCategories, err := s.catalog.SubCategories(c.WorkType, c.Category)
	if err != nil {
		return nil, err
	}
	tags, err := s.catalog.Tags(c.WorkType, c.Category, c.SubCategory)
	if err != nil {
		return nil, err
	}
	clauses, err := s.catalog.Filtered(c)
	if err != nil {
		return nil, err
	}

	selected := make([]bool, len(clauses))
	for i, clause := range clauses {
		selected[i] = sess.set.Contains(clause)
	}

	return &FilterState{
		Cascade:       c,
		WorkTypes:     workTypes,
		Categories:    categories,
		SubCategories: subCategories,
		Tags:          tags,
		Clauses:       clauses,
		Selected:      selected,
	}, nil
}

// ImageUpload is one file in an attach request
type ImageUpload struct {
	Filename string
	MimeType string
	Size     int64
	Data     io.Reader
}

// ImageUploadResult reports the outcome for one uploaded file. A batch
// continues past individual failures.
type ImageUploadResult struct {
	Filename   string                  `json:"filename"`
	Attachment *models.ImageAttachment `json:"attachment,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// AttachImages uploads images for a selected clause. Each file is validated
// and stored independently; one oversized or non-image file does not fail
// the rest.
func (s *SelectionService) AttachImages(ctx context.Context, estimateID uuid.UUID, key models.ClauseKey, uploads []ImageUpload) ([]ImageUploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	if !sess.set.Contains(models.Clause{WorkTypeCode: key.WorkTypeCode, Text: key.Text}) {
		return nil, ErrNotSelected
	}

	results := make([]ImageUploadResult, 0, len(uploads))
	for _, up := range uploads {
		att, err := s.attachOne(ctx, sess, key, up)
		if err != nil {
			results = append(results, ImageUploadResult{Filename: up.Filename, Error: err.Error()})
			continue
		}
		results = append(results, ImageUploadResult{Filename: up.Filename, Attachment: att})
	}

	return results, s.persist(ctx, sess)
}

func (s *SelectionService) attachOne(ctx context.Context, sess *session, key models.ClauseKey, up ImageUpload) (*models.ImageAttachment, error) {
	if up.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	if !strings.HasPrefix(up.MimeType, "image/") {
		return nil, ErrNotAnImage
	}

	fileID := uuid.New()
	storagePath, err := s.store.Upload(ctx, fileID, up.Filename, up.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	att := &models.ImageAttachment{
		EstimateID:  sess.estimate.ID,
		ClauseKey:   key.String(),
		Filename:    up.Filename,
		MimeType:    up.MimeType,
		Size:        up.Size,
		StoragePath: storagePath,
	}

	if err := s.attachmentRepo.Create(ctx, att); err != nil {
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			log.Printf("Warning: Failed to clean up stored image %s: %v", storagePath, delErr)
		}
		return nil, err
	}

	sess.set.Attach(*att)
	return att, nil
}

// RemoveImage detaches and destroys a single attachment
func (s *SelectionService) RemoveImage(ctx context.Context, estimateID uuid.UUID, key models.ClauseKey, attachmentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return err
	}

	att, ok := sess.set.Detach(key.String(), attachmentID)
	if !ok {
		return errors.New("attachment not found")
	}

	s.destroyAttachments(ctx, []models.ImageAttachment{att})
	return s.persist(ctx, sess)
}

// Snapshot returns the current selection in insertion order
func (s *SelectionService) Snapshot(ctx context.Context, estimateID uuid.UUID) ([]models.SelectedClause, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	return sess.set.Snapshot(), nil
}

// Sections returns the derived dynamic document sections
func (s *SelectionService) Sections(ctx context.Context, estimateID uuid.UUID) ([]models.DocumentSection, error) {
	snapshot, err := s.Snapshot(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	return document.GroupSections(snapshot), nil
}

// Preview returns the rendered preview markup for an estimate
func (s *SelectionService) Preview(ctx context.Context, estimateID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return "", err
	}
	return sess.region.Markup(), nil
}

// Region returns the live preview region for the export pipeline
func (s *SelectionService) Region(ctx context.Context, estimateID uuid.UUID) (*document.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	return sess.region, nil
}

// Estimate returns the cached estimate backing a session
func (s *SelectionService) Estimate(ctx context.Context, estimateID uuid.UUID) (*models.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	return sess.estimate, nil
}

// ResetAll drops every session. Called when the catalog reloads, since
// selections reference clauses that may no longer exist.
func (s *SelectionService) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[uuid.UUID]*session)
	log.Printf("Selection sessions reset")
}
