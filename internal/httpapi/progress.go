package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/romansashin/as-app/internal/storage"
)

// GetProgress returns the per-practice completion counts for the resolved
// user. An anonymous caller gets an empty mapping, never a hard failure.
func GetProgress(repo storage.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r)
		if userID == "" {
			respondJSON(w, map[string]int{}, http.StatusOK)
			return
		}

		progress, err := repo.ProgressByUser(userID)
		if err != nil {
			log.Printf("progress read failed for user %s: %v", userID, err)
			respondError(w, "Failed to get progress", http.StatusInternalServerError)
			return
		}

		respondJSON(w, progress, http.StatusOK)
	}
}

// PostProgress appends one completion event for the resolved user.
func PostProgress(repo storage.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PracticeID string `json:"practice_id"`
		}

		// A non-string practice_id fails the decode; a missing one decodes
		// to "". Both are the caller's fault.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PracticeID == "" {
			respondError(w, "practice_id is required", http.StatusBadRequest)
			return
		}

		userID := UserID(r)
		if userID == "" {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := repo.AppendCompletion(userID, req.PracticeID)
		if err != nil {
			log.Printf("append failed for user %s, practice %s: %v", userID, req.PracticeID, err)
			respondError(w, "Failed to add progress", http.StatusInternalServerError)
			return
		}

		respondJSON(w, map[string]any{"success": true, "id": id}, http.StatusCreated)
	}
}
