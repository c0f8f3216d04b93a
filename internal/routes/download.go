package routes

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"transmux/internal/config"
	"transmux/internal/util"
)

func DownloadRoutes(r chi.Router) {
	r.Get("/download-video/{filename}", handleDownloadVideo)
}

// handleDownloadVideo streams a previously converted artifact. Artifacts
// are never deleted after serving; repeated fetches succeed until the
// retention sweep reclaims them.
func handleDownloadVideo(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if !util.ValidArtifactName(config.ScratchDir, filename) {
		http.Error(w, "File not found", 404)
		return
	}

	path := filepath.Join(config.ScratchDir, filename)
	stat, err := os.Stat(path)
	if err != nil {
		http.Error(w, "File not found", 404)
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	mimeType := config.VideoMIMEs[ext]
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", stat.Size()))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		filename, url.PathEscape(filename)))

	f, err := os.Open(path)
	if err != nil {
		http.Error(w, "Failed to read file", 500)
		return
	}
	defer f.Close()

	// Headers are already out; a copy error here can only be logged.
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("[Download] Stream error for %s: %v", filename, err)
	}
}
