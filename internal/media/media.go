// Package media turns user-supplied images into the data URLs stored with the
// profile and the lesson schedule.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

const dataURLPrefix = "data:image/jpeg;base64,"

var ErrNotImage = errors.New("not a data URL image")

// EncodeFile reads the image at path and returns it as a JPEG data URL whose
// longer side is at most maxSide pixels.
func EncodeFile(path string, maxSide int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Encode(f, maxSide)
}

// Encode is EncodeFile for an already open reader.
func Encode(r io.Reader, maxSide int) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	img = Fit(img, maxSide)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Fit downscales img so neither side exceeds maxSide. Smaller images are
// returned unchanged.
func Fit(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}

// Decode parses a data URL produced by Encode.
func Decode(dataURL string) (image.Image, error) {
	raw, err := payload(dataURL)
	if err != nil {
		return nil, err
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}
	return img, nil
}

// Describe summarises a stored image for display, e.g. "640×480 JPEG, 41 KB".
// Only the JPEG header is read.
func Describe(dataURL string) string {
	raw, err := payload(dataURL)
	if err != nil {
		return "no image"
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "no image"
	}
	return fmt.Sprintf("%d×%d JPEG, %d KB", cfg.Width, cfg.Height, (len(raw)+1023)/1024)
}

func payload(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, ErrNotImage
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, dataURLPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return raw, nil
}
