package domain

import "strings"

// Canonical column names used by validation and the read endpoints.
const (
	FieldCode         = "code"
	FieldOfficialName = "official_name"
	FieldFacilityType = "facility_type"
	FieldCounty       = "county"
)

// RequiredFields lists the columns every uploaded row must carry with a
// non-blank value.
var RequiredFields = []string{FieldCode, FieldOfficialName, FieldFacilityType}

// Record is a single uploaded facility row: an ordered mapping of column
// name to trimmed string value. Column order follows the CSV header so that
// inserts replay the file faithfully. Records are built once by the decoder
// and never mutated afterwards.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord creates an empty record over the given column set. The column
// slice is shared across a batch; callers must not modify it.
func NewRecord(columns []string) Record {
	return Record{
		columns: columns,
		values:  make(map[string]string, len(columns)),
	}
}

// Set stores a value for a column.
func (r Record) Set(column, value string) {
	r.values[column] = value
}

// Get returns the value for a column, or the empty string when absent.
func (r Record) Get(column string) string {
	return r.values[column]
}

// Columns returns the record's column names in file order.
func (r Record) Columns() []string {
	return r.columns
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Blank reports whether the value for a column is missing or whitespace-only.
func (r Record) Blank(column string) bool {
	return strings.TrimSpace(r.values[column]) == ""
}

// Values returns a copy of the record as a plain map.
func (r Record) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Batch is the ordered sequence of records parsed from one CSV upload. It
// lives for the duration of a single request; only its rows are persisted.
type Batch struct {
	Columns []string
	Records []Record
}

// Len returns the number of data rows in the batch.
func (b Batch) Len() int {
	return len(b.Records)
}

// Codes extracts the identifier column from every record in file order.
func (b Batch) Codes() []string {
	codes := make([]string, 0, len(b.Records))
	for _, rec := range b.Records {
		codes = append(codes, rec.Get(FieldCode))
	}
	return codes
}

// FacilityRow is a canonical or staged table row keyed by column name. The
// tables carry an open column set, so rows stay schemaless on the way out.
type FacilityRow map[string]any
