package routes

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transmux/internal/services"
)

func newImageRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	ImageRoutes(r, services.NewImageConverter())
	return r
}

func pngUpload(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.String()
}

func postImages(t *testing.T, r chi.Router, format string, uploads []upload) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, "images", format, uploads)
	req := httptest.NewRequest("POST", "/convert-image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestConvertImageInlineResult(t *testing.T) {
	r := newImageRouter(t)

	rec := postImages(t, r, "jpeg", []upload{{"photo.png", pngUpload(t)}})

	require.Equal(t, 200, rec.Code)
	var resp batchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ConvertedFiles, 1)

	result := resp.ConvertedFiles[0]
	assert.Equal(t, "photo.png", result["originalName"])
	assert.Equal(t, "photo.jpeg", result["newName"])
	assert.Equal(t, "image/jpeg", result["mimeType"])

	encoded, _ := result["data"].(string)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(raw))
	assert.NoError(t, err, "inline payload must be a decodable jpeg")
}

func TestConvertImageRejectsInvalidFormat(t *testing.T) {
	r := newImageRouter(t)

	rec := postImages(t, r, "exe", []upload{{"photo.png", pngUpload(t)}})

	require.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "png")
}

func TestConvertImageIsolatesBadFiles(t *testing.T) {
	r := newImageRouter(t)

	rec := postImages(t, r, "png", []upload{
		{"ok.png", pngUpload(t)},
		{"broken.png", "not an image at all"},
	})

	require.Equal(t, 200, rec.Code)
	var resp batchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ConvertedFiles, 2)

	assert.NotContains(t, resp.ConvertedFiles[0], "error")
	assert.Contains(t, resp.ConvertedFiles[1], "error")
}
