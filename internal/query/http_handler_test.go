package query

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rkaranja/facility-registry/internal/domain"

	"go.uber.org/zap"
)

func TestRoutesServeFacilities(t *testing.T) {
	service := NewService(
		&stubFacilityRepo{rows: []domain.FacilityRow{{"code": "A1"}}},
		&stubStagingRepo{},
		zap.NewNop(),
	)
	router := NewHTTPHandler(service).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facilities", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 || rows[0]["code"] != "A1" {
		t.Fatalf("unexpected payload: %v", rows)
	}
}

func TestRoutesServeFacilityTypes(t *testing.T) {
	service := NewService(
		&stubFacilityRepo{types: []string{"Hospital"}},
		&stubStagingRepo{},
		zap.NewNop(),
	)
	router := NewHTTPHandler(service).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facility-types", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var types []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(types) != 1 || types[0]["facility_type"] != "Hospital" {
		t.Fatalf("unexpected payload: %v", types)
	}
}

func TestRoutesReportGenericFetchError(t *testing.T) {
	service := NewService(
		&stubFacilityRepo{listErr: errors.New("dial tcp: connection refused")},
		&stubStagingRepo{},
		zap.NewNop(),
	)
	router := NewHTTPHandler(service).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facilities", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != ErrFetchFailed.Error() {
		t.Fatalf("unexpected error payload: %v", resp)
	}
}
