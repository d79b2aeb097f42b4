package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy to HTTP statuses. Anything outside the
// taxonomy is a 500 and gets logged; taxonomy errors surface verbatim.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrPrecursorMissing):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
		slog.Error("internal error", "error", err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

type fileResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	ScopeKind         string    `json:"scope_kind"`
	ScopeID           string    `json:"scope_id"`
	StorageRef        string    `json:"storage_ref"`
	CreatorID         string    `json:"creator_id"`
	MarkedForDeletion bool      `json:"marked_for_deletion"`
	CreatedAt         time.Time `json:"created_at"`
}

func toFileResponse(f *model.File) fileResponse {
	return fileResponse{
		ID:                f.ID,
		Name:              f.Name,
		Type:              f.Type,
		ScopeKind:         f.ScopeKind,
		ScopeID:           f.ScopeID,
		StorageRef:        f.StorageRef,
		CreatorID:         f.CreatorID,
		MarkedForDeletion: f.MarkedForDeletion,
		CreatedAt:         f.CreatedAt,
	}
}

func toFileResponses(files []*model.File) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	return out
}
