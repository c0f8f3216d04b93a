package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertPNGToJPEG(t *testing.T) {
	ic := NewImageConverter()

	out, err := ic.Convert(testPNG(t), "image/png", "jpeg")
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestConvertPNGToWebP(t *testing.T) {
	ic := NewImageConverter()

	out, err := ic.Convert(testPNG(t), "image/png", "webp")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	// WebP containers open with a RIFF header.
	assert.Equal(t, []byte("RIFF"), out[:4])
}

func TestConvertRejectsGarbageInput(t *testing.T) {
	ic := NewImageConverter()

	_, err := ic.Convert([]byte("definitely not an image"), "image/png", "jpeg")
	assert.Error(t, err)
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	ic := NewImageConverter()

	_, err := ic.Convert(testPNG(t), "image/png", "tiff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}
