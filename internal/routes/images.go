package routes

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"transmux/internal/config"
	"transmux/internal/services"
	"transmux/internal/util"
)

// imageResult mirrors the video result shape but carries the converted
// bytes inline (base64 in JSON); the image path owns no files on disk.
type imageResult struct {
	OriginalName string `json:"originalName"`
	NewName      string `json:"newName"`
	MimeType     string `json:"mimeType"`
	Data         []byte `json:"data,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Error        string `json:"error,omitempty"`
}

func ImageRoutes(r chi.Router, ic *services.ImageConverter) {
	r.Post("/convert-image", handleConvertImage(ic))
}

func handleConvertImage(ic *services.ImageConverter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := readUploads(w, r, "images")
		if err != nil {
			respondJSON(w, 400, map[string]string{"error": err.Error()})
			return
		}

		format := strings.ToLower(r.FormValue("format"))
		if !config.Contains(config.AllowedImageFormats, format) {
			respondJSON(w, 400, map[string]string{
				"error": fmt.Sprintf("invalid or missing format. Supported formats: %s",
					strings.Join(config.AllowedImageFormats, ", ")),
			})
			return
		}
		if len(files) == 0 {
			respondJSON(w, 400, map[string]string{"error": "no image files uploaded"})
			return
		}

		results := make([]imageResult, len(files))
		for i, file := range files {
			converted, err := ic.Convert(file.Content, file.MimeType, format)
			if err != nil {
				log.Printf("[Image] Conversion of %q failed: %v", file.OriginalName, err)
				results[i] = imageResult{
					OriginalName: file.OriginalName,
					MimeType:     "application/octet-stream",
					Error:        err.Error(),
				}
				continue
			}
			base := strings.TrimSuffix(filepath.Base(file.OriginalName), filepath.Ext(file.OriginalName))
			results[i] = imageResult{
				OriginalName: file.OriginalName,
				NewName:      util.SanitizeFilename(base) + "." + format,
				MimeType:     config.ImageMIMEs[format],
				Data:         converted,
				Size:         int64(len(converted)),
			}
		}

		respondJSON(w, 200, map[string]interface{}{
			"success":        true,
			"convertedFiles": results,
		})
	}
}
