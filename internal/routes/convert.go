package routes

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"transmux/internal/config"
	"transmux/internal/services"
)

var (
	errUploadParse  = errors.New("failed to parse upload: file may be too large")
	errUploadRead   = errors.New("failed to read uploaded file")
	errTooManyFiles = fmt.Errorf("too many files: maximum %d per batch", config.MaxBatchFiles)
)

type convertVideoResponse struct {
	Success        bool                        `json:"success"`
	ConvertedFiles []services.ConversionResult `json:"convertedFiles"`
}

func ConvertRoutes(r chi.Router, conv *services.Converter) {
	r.Post("/convert-video", handleConvertVideo(conv))
}

func handleConvertVideo(conv *services.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := readUploads(w, r, "videos")
		if err != nil {
			respondJSON(w, 400, map[string]string{"error": err.Error()})
			return
		}

		format := r.FormValue("format")

		results, err := conv.ConvertBatch(r.Context(), files, format)
		if err != nil {
			respondJSON(w, 400, map[string]string{"error": err.Error()})
			return
		}

		origin := requestOrigin(r)
		for i := range results {
			if results[i].DownloadRef != "" {
				results[i].DownloadURL = origin + "/download-video/" + results[i].DownloadRef
			}
		}

		respondJSON(w, 200, convertVideoResponse{Success: true, ConvertedFiles: results})
	}
}

// readUploads buffers every file under fieldName into memory. Uploads live
// only for the duration of the request; the batch layer persists each one
// to its job's input path itself.
func readUploads(w http.ResponseWriter, r *http.Request, fieldName string) ([]services.UploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, config.FileSizeLimit)
	if err := r.ParseMultipartForm(config.MultipartMemoryMax); err != nil {
		return nil, errUploadParse
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[fieldName]
	if len(headers) > config.MaxBatchFiles {
		return nil, errTooManyFiles
	}

	files := make([]services.UploadedFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, errUploadRead
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errUploadRead
		}
		files = append(files, services.UploadedFile{
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Content:      content,
			Size:         int64(len(content)),
		})
	}

	if len(files) > 0 {
		log.Printf("[Upload] Received %d file(s) in field %q", len(files), fieldName)
	}
	return files, nil
}
