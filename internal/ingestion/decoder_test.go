package ingestion

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeCSVTrimsAndPreservesOrder(t *testing.T) {
	data := "code,official_name,facility_type,county\n" +
		" A1 ,  Kijabe Hospital ,Hospital,Kiambu\n" +
		"B2,Ruiru Clinic, Clinic ,Kiambu\n"

	batch, err := DecodeCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}

	wantColumns := []string{"code", "official_name", "facility_type", "county"}
	if !reflect.DeepEqual(batch.Columns, wantColumns) {
		t.Fatalf("unexpected columns: %v", batch.Columns)
	}
	if batch.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", batch.Len())
	}
	if got := batch.Records[0].Get("official_name"); got != "Kijabe Hospital" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := batch.Records[1].Get("facility_type"); got != "Clinic" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if !reflect.DeepEqual(batch.Codes(), []string{"A1", "B2"}) {
		t.Fatalf("unexpected codes: %v", batch.Codes())
	}
}

func TestDecodeCSVStripsByteOrderMark(t *testing.T) {
	data := "\xEF\xBB\xBFcode,official_name\nA1,Alpha\n"

	batch, err := DecodeCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if batch.Columns[0] != "code" {
		t.Fatalf("BOM leaked into first column: %q", batch.Columns[0])
	}
}

func TestDecodeCSVSanitizesHeaders(t *testing.T) {
	data := "Facility Code,Official Name,Official Name,\nA1,Alpha,Beta,x\n"

	batch, err := DecodeCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}

	want := []string{"facility_code", "official_name", "official_name_2", "column_4"}
	if !reflect.DeepEqual(batch.Columns, want) {
		t.Fatalf("unexpected columns: %v", batch.Columns)
	}
	if got := batch.Records[0].Get("official_name_2"); got != "Beta" {
		t.Fatalf("duplicate column lost its value: %q", got)
	}
}

func TestDecodeCSVRejectsRaggedRows(t *testing.T) {
	data := "code,official_name\nA1,Alpha,extra\n"

	if _, err := DecodeCSV(strings.NewReader(data)); err == nil {
		t.Fatalf("expected error for row with wrong field count")
	}
}

func TestDecodeCSVRejectsEmptyFile(t *testing.T) {
	if _, err := DecodeCSV(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestDecodeCSVHeaderOnlyFileYieldsEmptyBatch(t *testing.T) {
	batch, err := DecodeCSV(strings.NewReader("code,official_name\n"))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if batch.Len() != 0 {
		t.Fatalf("expected empty batch, got %d records", batch.Len())
	}
}
