package services

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ImageConverter re-encodes image buffers in memory. Unlike video jobs it
// owns no subprocess and no temp files; a call either returns the converted
// bytes or an error.
type ImageConverter struct{}

func NewImageConverter() *ImageConverter {
	return &ImageConverter{}
}

// Convert decodes data by its MIME type and re-encodes it as format.
func (ic *ImageConverter) Convert(data []byte, mimeType, format string) ([]byte, error) {
	img, err := ic.decode(data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode as %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func (ic *ImageConverter) decode(data []byte, mimeType string) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return jpeg.Decode(reader)
	case "image/png":
		return png.Decode(reader)
	case "image/webp":
		return webp.Decode(reader)
	case "image/gif":
		return gif.Decode(reader)
	default:
		return imaging.Decode(reader)
	}
}
