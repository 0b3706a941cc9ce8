package handler

import (
	"net/http"
	"path/filepath"
)

// PageHandler serves the fixed HTML pages of the front end
type PageHandler struct {
	staticDir string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{
		staticDir: staticDir,
	}
}

// Page returns a handler serving one file of the static directory
func (h *PageHandler) Page(name string) http.HandlerFunc {
	path := filepath.Join(h.staticDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
