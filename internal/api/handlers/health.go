package handlers

import (
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/rohits-web03/lyricjournal/internal/utils"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func Health(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSONResponse(w, http.StatusOK, HealthResponse{
			Status:    "OK",
			Timestamp: now().UTC().Format(time.RFC3339),
		})
	}
}

// Static serves files from dir and falls back to dir/index.html for any path
// that is not a regular file, so client-side routes load the app shell.
func Static(dir string) http.HandlerFunc {
	root := http.Dir(dir)
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if f, err := root.Open(name); err == nil {
			info, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !info.IsDir() && name != "/index.html" {
				http.ServeFile(w, r, filepath.Join(dir, filepath.FromSlash(name)))
				return
			}
		}
		http.ServeFile(w, r, index)
	}
}
