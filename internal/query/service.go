package query

import (
	"context"
	"errors"

	"github.com/rkaranja/facility-registry/internal/domain"
	"github.com/rkaranja/facility-registry/internal/repository"

	"go.uber.org/zap"
)

// ErrFetchFailed is the only error the read endpoints surface to callers.
// The underlying store error is logged, never echoed.
var ErrFetchFailed = errors.New("failed to fetch records")

// Service serves the read-only endpoints: straight pass-throughs to the
// store with no business logic in between.
type Service struct {
	facilities repository.FacilityRepository
	staging    repository.StagingRepository
	logger     *zap.Logger
}

// NewService creates a new query service.
func NewService(
	facilities repository.FacilityRepository,
	staging repository.StagingRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		facilities: facilities,
		staging:    staging,
		logger:     logger,
	}
}

// FacilityType wraps a distinct facility_type value for JSON responses.
type FacilityType struct {
	FacilityType string `json:"facility_type"`
}

// Facilities returns every canonical facility row in store order.
func (s *Service) Facilities(ctx context.Context) ([]domain.FacilityRow, error) {
	rows, err := s.facilities.List(ctx)
	if err != nil {
		s.logger.Error("failed to list facilities", zap.Error(err))
		return nil, ErrFetchFailed
	}
	return rows, nil
}

// FacilityTypes returns the distinct non-null facility types.
func (s *Service) FacilityTypes(ctx context.Context) ([]FacilityType, error) {
	values, err := s.facilities.DistinctTypes(ctx)
	if err != nil {
		s.logger.Error("failed to list facility types", zap.Error(err))
		return nil, ErrFetchFailed
	}

	types := make([]FacilityType, len(values))
	for i, value := range values {
		types[i] = FacilityType{FacilityType: value}
	}
	return types, nil
}

// UploadedFacilities returns every staged row ordered by county.
func (s *Service) UploadedFacilities(ctx context.Context) ([]domain.FacilityRow, error) {
	rows, err := s.staging.ListByCounty(ctx)
	if err != nil {
		s.logger.Error("failed to list uploaded facilities", zap.Error(err))
		return nil, ErrFetchFailed
	}
	return rows, nil
}
