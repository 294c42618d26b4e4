package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/biovote/registry/internal/core/ports"
)

type contextKey string

// CredentialKey carries the verified admin credential so handlers can hand it
// to the admin service, which re-checks it.
const CredentialKey contextKey = "adminCredential"

// AdminOnly rejects requests that do not carry a valid admin credential,
// either as a bearer token or as the access_token cookie.
func AdminOnly(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := credentialFrom(r)
			if err := auth.Verify(credential); err != nil {
				http.Error(w, "Unauthorized: admin credential required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CredentialKey, credential)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func credentialFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
