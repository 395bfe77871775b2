package api

import (
	"net/http"
	"os"
	"path/filepath"

	"example.com/exercisetracker/internal/domain"
)

// StaticHandler serves the landing page and public assets. Requests that
// match neither an API route nor a file go through the same error
// normalization as everything else.
type StaticHandler struct {
	dir string
}

// NewStaticHandler builds a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

func (s *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		path := filepath.Join(s.dir, filepath.Clean("/"+r.URL.Path))
		if r.URL.Path == "/" {
			path = filepath.Join(s.dir, "index.html")
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
	}
	writeError(w, domain.ErrNotFound)
}
