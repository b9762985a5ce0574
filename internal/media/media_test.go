package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeDownscales(t *testing.T) {
	url, err := Encode(bytes.NewReader(pngBytes(t, 400, 200)), 100)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, dataURLPrefix))

	img, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestEncodeKeepsSmallImages(t *testing.T) {
	url, err := Encode(bytes.NewReader(pngBytes(t, 40, 30)), 100)
	require.NoError(t, err)

	img, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestEncodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 300, 600), 0o644))

	url, err := EncodeFile(path, 150)
	require.NoError(t, err)
	img, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, 75, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestEncodeFileMissing(t *testing.T) {
	_, err := EncodeFile("/nonexistent/photo.png", 100)
	assert.Error(t, err)
}

func TestEncodeRejectsNonImage(t *testing.T) {
	_, err := Encode(strings.NewReader("definitely not an image"), 100)
	assert.Error(t, err)
}

func TestDecodeRejectsForeignURL(t *testing.T) {
	_, err := Decode("https://example.com/a.png")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDescribe(t *testing.T) {
	url, err := Encode(bytes.NewReader(pngBytes(t, 64, 32)), 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(Describe(url), "64×32 JPEG"))
	assert.Equal(t, "no image", Describe(""))
	assert.Equal(t, "no image", Describe(dataURLPrefix+"bm90IGEganBlZw=="))
}

func TestDescribeReadsHeaderOnly(t *testing.T) {
	url, err := Encode(bytes.NewReader(pngBytes(t, 40, 20)), 0)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, dataURLPrefix))
	require.NoError(t, err)

	// Cut the image at the start-of-scan marker: the frame header survives
	// but the pixel data does not.
	sos := bytes.Index(raw, []byte{0xFF, 0xDA})
	require.Positive(t, sos)
	truncated := dataURLPrefix + base64.StdEncoding.EncodeToString(raw[:sos])

	_, err = Decode(truncated)
	require.Error(t, err, "pixels are missing")
	assert.True(t, strings.HasPrefix(Describe(truncated), "40×20 JPEG"))
}
