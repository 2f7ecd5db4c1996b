package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NormalizeImageExt maps extension aliases onto the names used for media parts.
func NormalizeImageExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	switch ext {
	case "jpg", "jpe", "jfif":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return ext
}

// IsPresentationNative reports whether slides can embed ext without transcoding.
func IsPresentationNative(ext string) bool {
	switch NormalizeImageExt(ext) {
	case "png", "jpeg", "gif":
		return true
	}
	return false
}

// NormalizeImage returns a payload a presentation can embed. Native formats
// pass through untouched; everything decodable is re-encoded as PNG.
func NormalizeImage(data []byte, ext string) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}

	ext = NormalizeImageExt(ext)
	if IsPresentationNative(ext) {
		return data, ext, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %q image: %w", ext, err)
	}

	if IsPresentationNative(format) {
		return data, NormalizeImageExt(format), nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to re-encode %s image as png: %w", format, err)
	}

	return buf.Bytes(), "png", nil
}

// ImageMIME returns the content type registered for a media extension.
func ImageMIME(ext string) string {
	switch ext = NormalizeImageExt(ext); ext {
	case "png", "jpeg", "gif", "bmp", "tiff", "webp":
		return "image/" + ext
	default:
		return "application/octet-stream"
	}
}
