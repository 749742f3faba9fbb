package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the ingestion pipeline as an HTTP endpoint.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHTTPHandler wraps the service with a POST endpoint.
func NewHTTPHandler(service *Service, logger *zap.Logger) http.Handler {
	return &Handler{service: service, logger: logger}
}

type uploadResponse struct {
	Message       string `json:"message"`
	RowsProcessed int    `json:"rowsProcessed"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid form data",
			Details: err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "CSV file is required",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	// The type gate runs before the upload is staged to disk.
	if !isCSVContentType(header.Header.Get("Content-Type")) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   ErrUnsupportedFileType.Error(),
			Details: fmt.Sprintf("got content type %q", header.Header.Get("Content-Type")),
		})
		return
	}

	tmpPath, err := stageUpload(file)
	if err != nil {
		h.logger.Error("failed to stage upload", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to store uploaded file",
			Details: err.Error(),
		})
		return
	}
	// The staged file is removed on every exit path.
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			h.logger.Warn("failed to remove staged upload", zap.String("path", tmpPath), zap.Error(rmErr))
		}
	}()

	staged, err := os.Open(tmpPath)
	if err != nil {
		h.logger.Error("failed to reopen staged upload", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to read uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer staged.Close()

	result, err := h.service.Ingest(r.Context(), staged)
	if err != nil {
		h.respondIngestError(w, header.Filename, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:       "CSV data successfully uploaded",
		RowsProcessed: result.RowsProcessed,
	})
}

func (h *Handler) respondIngestError(w http.ResponseWriter, fileName string, err error) {
	var (
		dupErr        *DuplicateCodeError
		validationErr *ValidationError
		csvErr        *CSVError
		storeErr      *StoreError
	)

	switch {
	case errors.As(err, &dupErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Duplicate facility codes found",
			Details: dupErr.Codes,
		})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Validation failed",
			Details: validationErr.Details,
		})
	case errors.As(err, &csvErr):
		h.logger.Error("csv processing failed", zap.String("file", fileName), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Error processing CSV file",
			Details: csvErr.Err.Error(),
		})
	case errors.As(err, &storeErr):
		h.logger.Error("upload transaction failed", zap.String("file", fileName), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Database error",
			Details: storeErr.Err.Error(),
		})
	default:
		h.logger.Error("upload failed", zap.String("file", fileName), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}

// stageUpload copies the multipart part to a uniquely named temp file and
// returns its path. The caller owns the file and must remove it.
func stageUpload(file io.Reader) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("facility-upload-%s.csv", uuid.NewString()))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return path, nil
}

func isCSVContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "text/csv", "application/csv":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
