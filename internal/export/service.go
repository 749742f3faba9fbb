package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rkaranja/facility-registry/internal/domain"
	"github.com/rkaranja/facility-registry/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrExportFailed is surfaced to callers when the store read fails; the
// underlying error is logged only.
var ErrExportFailed = errors.New("failed to export records")

const sheetName = "Facilities"

// Service renders the canonical facility table as an xlsx workbook.
type Service struct {
	facilities repository.FacilityRepository
	logger     *zap.Logger
}

// NewService creates a new export service.
func NewService(facilities repository.FacilityRepository, logger *zap.Logger) *Service {
	return &Service{facilities: facilities, logger: logger}
}

// FacilitiesWorkbook builds a workbook with one header row followed by every
// canonical facility row. Columns are the union of all row keys, sorted, so
// the open column set serializes deterministically.
func (s *Service) FacilitiesWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.facilities.List(ctx)
	if err != nil {
		s.logger.Error("failed to read facilities for export", zap.Error(err))
		return nil, ErrExportFailed
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := collectColumns(rows)
	for colIdx, column := range columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, column); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, column := range columns {
			value, ok := row[column]
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func collectColumns(rows []domain.FacilityRow) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for column := range row {
			if _, ok := seen[column]; !ok {
				seen[column] = struct{}{}
				columns = append(columns, column)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
