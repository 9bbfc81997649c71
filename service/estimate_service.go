package service

import (
	"context"
	"errors"

	"bidcond-backend/models"
	"bidcond-backend/repository"

	"github.com/google/uuid"
)

// EstimateService handles business logic for estimates
type EstimateService struct {
	estimateRepo *repository.EstimateRepository
}

// EstimateServiceOption is a functional option for EstimateService
type EstimateServiceOption func(*EstimateService)

// WithEstimateRepository sets the estimate repository
func WithEstimateRepository(repo *repository.EstimateRepository) EstimateServiceOption {
	return func(s *EstimateService) {
		s.estimateRepo = repo
	}
}

// NewEstimateService creates a new estimate service
func NewEstimateService(opts ...EstimateServiceOption) *EstimateService {
	s := &EstimateService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEstimateRequest represents a request to create an estimate
type CreateEstimateRequest struct {
	ProjectInfo models.ProjectInfo
	WorkType    string
}

// CreateEstimateResult represents the result of creating an estimate
type CreateEstimateResult struct {
	Estimate *models.Estimate
}

// CreateEstimate creates a new draft estimate
func (s *EstimateService) CreateEstimate(ctx context.Context, req CreateEstimateRequest) (*CreateEstimateResult, error) {
	if s.estimateRepo == nil {
		return nil, errors.New("estimate repository not set")
	}

	info := req.ProjectInfo
	info.ClampRates()

	estimate := &models.Estimate{
		Status:      models.StatusDraft,
		ProjectInfo: info,
		WorkType:    req.WorkType,
		Conditions:  make(models.ClauseList, 0),
	}

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, err
	}

	return &CreateEstimateResult{Estimate: estimate}, nil
}

// GetEstimateRequest represents a request to get an estimate
type GetEstimateRequest struct {
	ID uuid.UUID
}

// GetEstimateResult represents the result of getting an estimate
type GetEstimateResult struct {
	Estimate *models.Estimate
}

// GetEstimate retrieves an estimate by ID
func (s *EstimateService) GetEstimate(ctx context.Context, req GetEstimateRequest) (*GetEstimateResult, error) {
	if s.estimateRepo == nil {
		return nil, errors.New("estimate repository not set")
	}

	estimate, err := s.estimateRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetEstimateResult{Estimate: estimate}, nil
}

// UpdateEstimateRequest represents a request to update an estimate
type UpdateEstimateRequest struct {
	Estimate *models.Estimate
}

// UpdateEstimateResult represents the result of updating an estimate
type UpdateEstimateResult struct {
	Estimate *models.Estimate
}

// UpdateEstimate updates an estimate's project info, status, and work type
func (s *EstimateService) UpdateEstimate(ctx context.Context, req UpdateEstimateRequest) (*UpdateEstimateResult, error) {
	if s.estimateRepo == nil {
		return nil, errors.New("estimate repository not set")
	}

	req.Estimate.ProjectInfo.ClampRates()

	if err := s.estimateRepo.Update(ctx, req.Estimate); err != nil {
		return nil, err
	}

	return &UpdateEstimateResult{Estimate: req.Estimate}, nil
}

// ListEstimatesRequest represents a request to list estimates
type ListEstimatesRequest struct {
	Status *models.EstimateStatus
	Limit  int
	Offset int
}

// ListEstimatesResult represents the result of listing estimates
type ListEstimatesResult struct {
	Estimates []*models.Estimate
}

// ListEstimates lists estimates, newest first
func (s *EstimateService) ListEstimates(ctx context.Context, req ListEstimatesRequest) (*ListEstimatesResult, error) {
	if s.estimateRepo == nil {
		return nil, errors.New("estimate repository not set")
	}

	estimates, err := s.estimateRepo.List(ctx, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListEstimatesResult{Estimates: estimates}, nil
}

// DeleteEstimate deletes an estimate
func (s *EstimateService) DeleteEstimate(ctx context.Context, id uuid.UUID) error {
	if s.estimateRepo == nil {
		return errors.New("estimate repository not set")
	}
	return s.estimateRepo.Delete(ctx, id)
}
