package ingestion

import (
	"context"
	"io"

	"github.com/rkaranja/facility-registry/internal/repository"

	"go.uber.org/zap"
)

// Service runs the upload pipeline: decode, validate, then insert the whole
// batch inside one transaction. Each step gates the next; nothing reaches
// the store until validation has passed in full.
type Service struct {
	staging   repository.StagingRepository
	validator *Validator
	logger    *zap.Logger
}

// NewService creates a new ingestion service.
func NewService(staging repository.StagingRepository, logger *zap.Logger) *Service {
	return &Service{
		staging:   staging,
		validator: NewValidator(staging),
		logger:    logger,
	}
}

// Result reports a successful ingestion.
type Result struct {
	RowsProcessed int `json:"rowsProcessed"`
}

// Ingest decodes the CSV stream and stages every row. On failure it returns
// one of CSVError, DuplicateCodeError, ValidationError or StoreError; in all
// of those cases zero rows were written.
func (s *Service) Ingest(ctx context.Context, data io.Reader) (Result, error) {
	batch, err := DecodeCSV(data)
	if err != nil {
		return Result{}, &CSVError{Err: err}
	}

	if err := s.validator.CheckDuplicateCodes(ctx, batch); err != nil {
		return Result{}, err
	}
	if err := s.validator.ValidateRequiredFields(batch); err != nil {
		return Result{}, err
	}

	if err := s.staging.InsertBatch(ctx, batch); err != nil {
		return Result{}, &StoreError{Err: err}
	}

	s.logger.Info("staged facility upload",
		zap.Int("rows", batch.Len()),
		zap.Int("columns", len(batch.Columns)),
	)

	return Result{RowsProcessed: batch.Len()}, nil
}
