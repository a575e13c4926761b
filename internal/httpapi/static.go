package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPA serves the built frontend: real files when they exist, index.html
// for everything else so client-side routes survive a reload. API paths
// keep their 404s.
func SPA(staticDir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(staticDir))

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respondError(w, "Not found", http.StatusNotFound)
			return
		}

		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}
}
