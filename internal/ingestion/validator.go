package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/rkaranja/facility-registry/internal/domain"
	"github.com/rkaranja/facility-registry/internal/repository"
)

// Validator checks an upload batch before anything is written. The duplicate
// check gates the required-field check; both see the whole batch.
type Validator struct {
	staging repository.StagingRepository
}

// NewValidator creates a validator over the staging store.
func NewValidator(staging repository.StagingRepository) *Validator {
	return &Validator{staging: staging}
}

// CheckDuplicateCodes verifies that no facility code repeats within the
// batch and that none is already staged. In-batch repeats are reported
// without consulting the store; each offending code appears once.
func (v *Validator) CheckDuplicateCodes(ctx context.Context, batch domain.Batch) error {
	codes := batch.Codes()

	seen := make(map[string]int, len(codes))
	var repeated []string
	for _, code := range codes {
		seen[code]++
		if seen[code] == 2 {
			repeated = append(repeated, code)
		}
	}
	if len(repeated) > 0 {
		return &DuplicateCodeError{Codes: repeated}
	}

	existing, err := v.staging.ExistingCodes(ctx, codes)
	if err != nil {
		return &StoreError{Err: err}
	}
	if len(existing) > 0 {
		return &DuplicateCodeError{Codes: existing}
	}

	return nil
}

// ValidateRequiredFields confirms every record carries a non-blank value for
// each required field. Rows are numbered from 2, matching the file with its
// header line. All offending rows are collected, not just the first.
func (v *Validator) ValidateRequiredFields(batch domain.Batch) error {
	var details []string
	for idx, rec := range batch.Records {
		var missing []string
		for _, field := range domain.RequiredFields {
			if rec.Blank(field) {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			details = append(details, fmt.Sprintf(
				"Row %d: Missing required fields: %s",
				idx+2,
				strings.Join(missing, ", "),
			))
		}
	}

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}
