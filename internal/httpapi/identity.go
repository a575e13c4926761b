package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "userId"

// ExtractUser resolves the request's user from headers set by a trusted
// auth proxy. When fallback is non-empty (auth disabled), requests without
// a header are attributed to it. The middleware never rejects: handlers
// that need identity degrade on an empty value instead.
func ExtractUser(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Traefik BasicAuth sets this header
			userID := r.Header.Get("X-Auth-User")

			// Also check common alternatives
			if userID == "" {
				userID = r.Header.Get("X-Forwarded-User")
			}
			if userID == "" {
				userID = r.Header.Get("Remote-User")
			}

			if userID == "" {
				userID = fallback
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the resolved user for the request, or "" when identity
// could not be resolved.
func UserID(r *http.Request) string {
	userID, ok := r.Context().Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
