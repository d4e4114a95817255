package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ResourceLoadError reports a static asset that could not be read
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("failed to load resource %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

// LoadStylesheet reads the page stylesheet once at startup
func LoadStylesheet(path string) ([]byte, error) {
	if path == "" {
		return nil, &ResourceLoadError{Path: path, Err: fmt.Errorf("no stylesheet configured")}
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceLoadError{Path: path, Err: err}
	}
	return css, nil
}

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filepath := strings.TrimPrefix(r.URL.Path, "/static/")

	if filepath == "style.css" {
		h.handleStylesheet(w)
		return
	}

	// Prevent directory traversal attacks
	if filepath == "" || strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filepath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	http.ServeFile(w, r, joinStatic(h.staticDir, filepath))
}

func (h *Handler) handleStylesheet(w http.ResponseWriter) {
	if h.stylesheet == nil {
		http.Error(w, "Stylesheet unavailable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/css")
	_, _ = w.Write(h.stylesheet)
}

func joinStatic(dir, name string) string {
	return filepath.Join(dir, filepath.FromSlash(name))
}
