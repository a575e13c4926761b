package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/romansashin/as-app/internal/httpapi"
	"github.com/romansashin/as-app/internal/storage"
)

type fakeRepo struct {
	mu     sync.Mutex
	events []storage.CompletionEvent
	fail   bool
}

func (r *fakeRepo) AppendCompletion(userID, practiceID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return 0, errors.New("storage unavailable")
	}
	id := int64(len(r.events) + 1)
	r.events = append(r.events, storage.CompletionEvent{ID: id, UserID: userID, PracticeID: practiceID})
	return id, nil
}

func (r *fakeRepo) ProgressByUser(userID string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return nil, errors.New("storage unavailable")
	}
	progress := make(map[string]int)
	for _, ev := range r.events {
		if ev.UserID == userID {
			progress[ev.PracticeID]++
		}
	}
	return progress, nil
}

func (r *fakeRepo) Close() error { return nil }

func newRouter(repo storage.Repository, fallback string) http.Handler {
	r := chi.NewRouter()
	r.Use(httpapi.ExtractUser(fallback))
	r.Get("/api/progress", httpapi.GetProgress(repo))
	r.Post("/api/progress", httpapi.PostProgress(repo))
	return r
}

func TestGetProgressAnonymous(t *testing.T) {
	router := newRouter(&fakeRepo{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "{}" {
		t.Fatalf("anonymous progress = %q, want {}", body)
	}
}

func TestGetProgressCounts(t *testing.T) {
	repo := &fakeRepo{}
	repo.AppendCompletion("alice", "p1")
	repo.AppendCompletion("alice", "p1")
	repo.AppendCompletion("bob", "p1")
	router := newRouter(repo, "")

	req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	req.Header.Set("X-Auth-User", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var progress map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &progress); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if progress["p1"] != 2 {
		t.Fatalf("p1 count = %d, want 2", progress["p1"])
	}
}

func TestGetProgressStorageFailure(t *testing.T) {
	router := newRouter(&fakeRepo{fail: true}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	req.Header.Set("X-Auth-User", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestPostProgressValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty body", ``},
		{"non-string practice_id", `{"practice_id": 5}`},
		{"null practice_id", `{"practice_id": null}`},
		{"empty practice_id", `{"practice_id": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			router := newRouter(repo, "dev-user")

			req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if len(repo.events) != 0 {
				t.Fatalf("no event should have been inserted, got %d", len(repo.events))
			}
		})
	}
}

func TestPostProgressSuccess(t *testing.T) {
	repo := &fakeRepo{}
	router := newRouter(repo, "")

	req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(`{"practice_id": "p1"}`))
	req.Header.Set("X-Auth-User", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var result struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !result.Success || result.ID != 1 {
		t.Fatalf("unexpected response: %+v", result)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if ev := repo.events[0]; ev.UserID != "alice" || ev.PracticeID != "p1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestPostProgressFallbackIdentity(t *testing.T) {
	repo := &fakeRepo{}
	router := newRouter(repo, "dev-user")

	req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(`{"practice_id": "p1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if repo.events[0].UserID != "dev-user" {
		t.Fatalf("event user = %q, want dev-user", repo.events[0].UserID)
	}
}

func TestPostProgressAnonymous(t *testing.T) {
	repo := &fakeRepo{}
	router := newRouter(repo, "")

	req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(`{"practice_id": "p1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(repo.events) != 0 {
		t.Fatalf("no event should have been inserted")
	}
}

func TestPostProgressStorageFailure(t *testing.T) {
	router := newRouter(&fakeRepo{fail: true}, "dev-user")

	req := httptest.NewRequest(http.MethodPost, "/api/progress", strings.NewReader(`{"practice_id": "p1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
