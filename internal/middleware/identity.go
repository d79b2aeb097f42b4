package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orgdrive/orgdrive/internal/ctxkeys"
	"github.com/orgdrive/orgdrive/internal/service"
)

// Identity resolves the provider-issued bearer token to a user record and
// puts it on the request context. Requests without a valid token continue
// without a user; handlers decide whether that is fatal (mutations) or
// degrades to an empty result (listings).
func Identity(identityService *service.IdentityService, jwtSecret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenIdentifier, err := tokenIdentifierFromRequest(r, jwtSecret, issuer)
			if err != nil {
				slog.Debug("bearer token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			user, err := identityService.Resolve(r.Context(), tokenIdentifier)
			if err != nil {
				// unknown or not-yet-announced user; continue unauthenticated
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		})
	}
}

// tokenIdentifierFromRequest verifies the bearer token and builds the
// stable identifier the provider keys users by: issuer|subject.
func tokenIdentifierFromRequest(r *http.Request, jwtSecret, issuer string) (string, error) {
	auth := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(auth, "Bearer ")
	if !found || raw == "" {
		return "", fmt.Errorf("no bearer token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return issuer + "|" + sub, nil
}
