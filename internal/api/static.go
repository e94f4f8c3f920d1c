package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yegors/wxpanel/pkg/logger"
)

// StaticFileHandler serves the stylesheet and scripts from a directory
type StaticFileHandler struct {
	staticDir string
	logger    *logger.Logger
}

// NewStaticFileHandler creates a new static file handler
func NewStaticFileHandler(staticDir string, logger *logger.Logger) *StaticFileHandler {
	return &StaticFileHandler{
		staticDir: staticDir,
		logger:    logger.Named("static-handler"),
	}
}

// ServeHTTP serves a single file; directories are never listed
func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel == "" {
		http.NotFound(w, r)
		return
	}

	absStaticDir, err := filepath.Abs(h.staticDir)
	if err != nil {
		h.logger.Error("Failed to get absolute path for static directory", logger.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	fullPath := filepath.Join(absStaticDir, rel)
	if !strings.HasPrefix(fullPath, absStaticDir+string(filepath.Separator)) {
		h.logger.Warn("Attempted directory traversal",
			logger.String("requested_path", r.URL.Path))
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if !os.IsNotExist(err) {
			h.logger.Error("Failed to stat file", logger.Error(err), logger.String("path", fullPath))
		}
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, fullPath)
}
