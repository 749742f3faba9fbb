package ingestion

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rkaranja/facility-registry/internal/domain"
)

func batchWithCodes(codes ...string) domain.Batch {
	columns := []string{domain.FieldCode}
	batch := domain.Batch{Columns: columns}
	for _, code := range codes {
		rec := domain.NewRecord(columns)
		rec.Set(domain.FieldCode, code)
		batch.Records = append(batch.Records, rec)
	}
	return batch
}

func TestCheckDuplicateCodesReportsEachRepeatOnce(t *testing.T) {
	repo := &stubStagingRepo{}
	validator := NewValidator(repo)

	err := validator.CheckDuplicateCodes(context.Background(), batchWithCodes("A1", "A1", "A1", "B2", "B2", "C3"))

	var dupErr *DuplicateCodeError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateCodeError, got %v", err)
	}
	if !reflect.DeepEqual(dupErr.Codes, []string{"A1", "B2"}) {
		t.Fatalf("unexpected duplicate set: %v", dupErr.Codes)
	}
}

func TestCheckDuplicateCodesPassesCleanBatch(t *testing.T) {
	repo := &stubStagingRepo{}
	validator := NewValidator(repo)

	if err := validator.CheckDuplicateCodes(context.Background(), batchWithCodes("A1", "B2")); err != nil {
		t.Fatalf("expected clean batch to pass, got %v", err)
	}
	if repo.existingCalls != 1 {
		t.Fatalf("expected one existence probe, got %d", repo.existingCalls)
	}
}

func TestValidateRequiredFieldsNumbersRowsFromTwo(t *testing.T) {
	validator := NewValidator(&stubStagingRepo{})

	columns := []string{domain.FieldCode, domain.FieldOfficialName, domain.FieldFacilityType}
	batch := domain.Batch{Columns: columns}

	rec := domain.NewRecord(columns)
	rec.Set(domain.FieldCode, "A1")
	batch.Records = append(batch.Records, rec)

	err := validator.ValidateRequiredFields(batch)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := "Row 2: Missing required fields: official_name, facility_type"
	if len(validationErr.Details) != 1 || validationErr.Details[0] != want {
		t.Fatalf("unexpected details: %v", validationErr.Details)
	}
}
