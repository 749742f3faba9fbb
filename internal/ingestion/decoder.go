package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rkaranja/facility-registry/internal/domain"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV reads an uploaded CSV stream into an ordered batch of records.
// The first line defines the column names; every cell is trimmed of
// surrounding whitespace. The decode is atomic: a read error or a row whose
// field count differs from the header fails the whole file.
func DecodeCSV(data io.Reader) (domain.Batch, error) {
	reader := bufio.NewReader(data)
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return domain.Batch{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return domain.Batch{}, errors.New("no rows found in file")
	}

	columns := sanitizeHeaders(records[0])

	batch := domain.Batch{
		Columns: columns,
		Records: make([]domain.Record, 0, len(records)-1),
	}
	for _, row := range records[1:] {
		rec := domain.NewRecord(columns)
		for i, column := range columns {
			rec.Set(column, strings.TrimSpace(row[i]))
		}
		batch.Records = append(batch.Records, rec)
	}

	return batch, nil
}

// sanitizeHeaders normalizes header cells into column names: trimmed,
// lowercased, separators collapsed to underscores, blanks and duplicates
// given stable fallback names.
func sanitizeHeaders(raw []string) []string {
	columns := make([]string, len(raw))
	seen := make(map[string]int)

	for idx, value := range raw {
		name := strings.ToLower(strings.TrimSpace(value))
		name = strings.ReplaceAll(name, " ", "_")
		name = strings.ReplaceAll(name, ".", "_")
		name = strings.ReplaceAll(name, "-", "_")
		name = strings.Trim(name, "_")
		if name == "" {
			name = fmt.Sprintf("column_%d", idx+1)
		}

		base := name
		count := seen[base]
		if count > 0 {
			name = fmt.Sprintf("%s_%d", base, count+1)
		}
		seen[base] = count + 1

		columns[idx] = name
	}

	return columns
}
