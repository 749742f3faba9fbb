package ingestion

import (
	"errors"
	"strings"
)

// ErrUnsupportedFileType is returned when an upload is not a CSV file.
var ErrUnsupportedFileType = errors.New("only CSV files are supported")

// CSVError reports a stream or parse failure. Nothing was written.
type CSVError struct {
	Err error
}

func (e *CSVError) Error() string {
	return "failed to process CSV file: " + e.Err.Error()
}

func (e *CSVError) Unwrap() error {
	return e.Err
}

// DuplicateCodeError reports facility codes that repeat within the upload or
// collide with codes already staged. Nothing was written.
type DuplicateCodeError struct {
	Codes []string
}

func (e *DuplicateCodeError) Error() string {
	return "duplicate facility codes: " + strings.Join(e.Codes, ", ")
}

// ValidationError reports rows with missing required fields, one message per
// offending row. Nothing was written.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// StoreError reports a database failure. The transaction was rolled back.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return "database error: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
