package handler

import (
	"net/http"

	"github.com/orgdrive/orgdrive/internal/ctxkeys"
	"github.com/orgdrive/orgdrive/internal/service"
)

type FavoritesHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoritesHandler(favoriteService *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favoriteService: favoriteService}
}

func (h *FavoritesHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	err := h.favoriteService.Favorite(r.Context(), user, fileID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoritesHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	fileID := r.PathValue("id")

	err := h.favoriteService.Unfavorite(r.Context(), user, fileID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if user == nil {
		writeJSON(w, http.StatusOK, []fileResponse{})
		return
	}

	scope, err := scopeFromRequest(r, user)
	if err != nil {
		writeError(w, err)
		return
	}

	files, err := h.favoriteService.ListFavorites(r.Context(), user, scope)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFileResponses(files))
}
