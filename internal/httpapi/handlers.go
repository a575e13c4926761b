package httpapi

import (
	"log"
	"net/http"

	"github.com/romansashin/as-app/internal/content"
)

// GetContent serves the catalog blob verbatim.
func GetContent(store *content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := store.Raw()
		if err != nil {
			log.Printf("content read failed: %v", err)
			respondError(w, "Failed to load content", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	}
}

// GetMe reports the resolved identity. Provisioning lives in the auth
// proxy; this only reflects what it resolved.
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r)
		if userID == "" {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		respondJSON(w, map[string]any{
			"user": map[string]string{"id": userID},
		}, http.StatusOK)
	}
}

// Logout always succeeds. Session teardown is the auth proxy's job; the
// handler only expires its cookie when one is present.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err == nil {
			http.SetCookie(w, &http.Cookie{Name: "session", Path: "/", MaxAge: -1})
		}
		respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
