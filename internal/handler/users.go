package handler

import (
	"net/http"
	"time"

	"github.com/orgdrive/orgdrive/internal/apperr"
	"github.com/orgdrive/orgdrive/internal/ctxkeys"
	"github.com/orgdrive/orgdrive/internal/service"
)

type UsersHandler struct {
	identityService *service.IdentityService
}

func NewUsersHandler(identityService *service.IdentityService) *UsersHandler {
	return &UsersHandler{identityService: identityService}
}

type membershipResponse struct {
	OrgID string `json:"org_id"`
	Role  string `json:"role"`
}

type meResponse struct {
	ID          string               `json:"id"`
	Name        *string              `json:"name"`
	Image       *string              `json:"image"`
	Memberships []membershipResponse `json:"memberships"`
	CreatedAt   time.Time            `json:"created_at"`
}

type profileResponse struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// Me returns the resolved caller, memberships included.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	memberships := make([]membershipResponse, 0, len(user.Memberships))
	for _, m := range user.Memberships {
		memberships = append(memberships, membershipResponse{OrgID: m.OrgID, Role: m.Role})
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:          user.ID,
		Name:        user.Name,
		Image:       user.Image,
		Memberships: memberships,
		CreatedAt:   user.CreatedAt,
	})
}

// Profile returns the public name and image for any user id.
func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	user, err := h.identityService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{Name: user.Name, Image: user.Image})
}
