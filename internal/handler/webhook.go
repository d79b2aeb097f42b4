package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/orgdrive/orgdrive/internal/model"
	"github.com/orgdrive/orgdrive/internal/service"
)

// WebhookHandler ingests identity provider events. Signature verification
// is a transport concern handled right here; the identity service only ever
// sees verified payload fields.
type WebhookHandler struct {
	identityService *service.IdentityService
	secret          string
	issuer          string
}

func NewWebhookHandler(identityService *service.IdentityService, secret, issuer string) *WebhookHandler {
	return &WebhookHandler{
		identityService: identityService,
		secret:          secret,
		issuer:          issuer,
	}
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
		Role      string `json:"role"`

		Organization struct {
			ID string `json:"id"`
		} `json:"organization"`
		PublicUserData struct {
			UserID string `json:"user_id"`
		} `json:"public_user_data"`
	} `json:"data"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if h.secret == "" {
		slog.Warn("no webhook secret configured, skipping signature verification")
	} else {
		wh, err := standardwebhooks.NewWebhook(h.secret)
		if err != nil {
			slog.Error("failed to create webhook verifier", "error", err)
			http.Error(w, "webhook error", http.StatusInternalServerError)
			return
		}

		err = wh.Verify(payload, normalizeSvixHeaders(r.Header))
		if err != nil {
			slog.Warn("webhook signature verification failed", "error", err)
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	var event webhookEvent
	err = json.Unmarshal(payload, &event)
	if err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	err = h.apply(r, &event)
	if err != nil {
		slog.Warn("webhook event rejected", "type", event.Type, "error", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) apply(r *http.Request, event *webhookEvent) error {
	switch event.Type {
	case "user.created", "user.updated":
		name := strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName)
		var namePtr, imagePtr *string
		if name != "" {
			namePtr = &name
		}
		if event.Data.ImageURL != "" {
			imagePtr = &event.Data.ImageURL
		}
		return h.identityService.UpsertUser(r.Context(), h.tokenIdentifier(event.Data.ID), namePtr, imagePtr)

	case "organizationMembership.created":
		return h.identityService.GrantMembership(r.Context(),
			h.tokenIdentifier(event.Data.PublicUserData.UserID),
			event.Data.Organization.ID,
			model.RoleFromProvider(event.Data.Role),
		)

	case "organizationMembership.updated":
		return h.identityService.UpdateMembershipRole(r.Context(),
			h.tokenIdentifier(event.Data.PublicUserData.UserID),
			event.Data.Organization.ID,
			model.RoleFromProvider(event.Data.Role),
		)
	}

	slog.Debug("ignoring webhook event", "type", event.Type)
	return nil
}

func (h *WebhookHandler) tokenIdentifier(providerUserID string) string {
	return h.issuer + "|" + providerUserID
}

// normalizeSvixHeaders copies the provider's svix-* framing headers to the
// webhook-* names the standard-webhooks verifier reads.
func normalizeSvixHeaders(in http.Header) http.Header {
	out := in.Clone()
	for _, name := range []string{"id", "timestamp", "signature"} {
		if v := in.Get("svix-" + name); v != "" && out.Get("webhook-"+name) == "" {
			out.Set("webhook-"+name, v)
		}
	}
	return out
}
