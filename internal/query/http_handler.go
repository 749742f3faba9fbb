package query

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the read endpoints.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with the read routes.
func NewHTTPHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the read-endpoint router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/facilities", h.handleFacilities)
	r.Get("/facility-types", h.handleFacilityTypes)
	r.Get("/uploaded-facilities", h.handleUploadedFacilities)
	return r
}

func (h *Handler) handleFacilities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Facilities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleFacilityTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.FacilityTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handler) handleUploadedFacilities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.UploadedFacilities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
