package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/ctxkeys"
	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/repository"
	"github.com/orgdrive/orgdrive/internal/service"
)

type FilesHandler struct {
	fileService *service.FileService
}

func NewFilesHandler(fileService *service.FileService) *FilesHandler {
	return &FilesHandler{fileService: fileService}
}

// scopeFromRequest builds the target scope: an org scope when org_id is
// given, otherwise the caller's personal scope.
func scopeFromRequest(r *http.Request, user *model.User) (model.Scope, error) {
	orgID := r.URL.Query().Get("org_id")
	if orgID != "" {
		return model.OrgScope(orgID), nil
	}
	if user == nil {
		return model.Scope{}, apperr.ErrUnauthenticated
	}
	return model.PersonalScope(user.ID), nil
}

func (h *FilesHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	url, storageRef, err := h.fileService.PresignUpload(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"upload_url":  url,
		"storage_ref": storageRef,
	})
}

type createFileRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	OrgID      string `json:"org_id"`
	StorageRef string `json:"storage_ref"`
}

func (h *FilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	var req createFileRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, fmt.Errorf("%w: malformed body", apperr.ErrInvalidArgument))
		return
	}

	scope := model.PersonalScope(user.ID)
	if req.OrgID != "" {
		scope = model.OrgScope(req.OrgID)
	}

	file, err := h.fileService.CreateFile(r.Context(), user, req.Name, req.Type, scope, req.StorageRef)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFileResponse(file))
}

func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// unauthenticated listing degrades to an empty result
	if user == nil && r.URL.Query().Get("org_id") == "" {
		writeJSON(w, http.StatusOK, []fileResponse{})
		return
	}

	scope, err := scopeFromRequest(r, user)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	filter := repository.FileFilter{
		Trash: q.Get("trash") == "true",
		Type:  q.Get("type"),
		Query: q.Get("q"),
	}
	if q.Get("favorites") == "true" && user != nil {
		filter.FavoritedBy = user.ID
	}

	files, err := h.fileService.ListFiles(r.Context(), user, scope, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFileResponses(files))
}

func (h *FilesHandler) Trash(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	err := h.fileService.MarkForDeletion(r.Context(), user, fileID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FilesHandler) Restore(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	err := h.fileService.Restore(r.Context(), user, fileID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
