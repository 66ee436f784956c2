package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/youdeservebetter/backend/internal/domain"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth   = 1200
	jpegQuality     = 80
	maxUploadSize   = 10 << 20 // 10MB
	maxInlineResult = 700 << 10
	maxImagePixels  = 40_000_000
)

// NormalizeImage prepares a post image reference for storage.
//
// An empty value stays empty and http(s) URLs are kept as they are. A data
// URL is decoded, scaled down to maxImageWidth and re-encoded as JPEG so the
// inline payload stays well below the document size limit of the store.
func NormalizeImage(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", nil
	case strings.HasPrefix(raw, "data:"):
		return normalizeDataURL(raw)
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		u, err := url.ParseRequestURI(raw)
		if err != nil || u.Host == "" {
			return "", domain.NewValidation("imageUrl: must be a valid URL")
		}
		return raw, nil
	default:
		return "", domain.NewValidation("imageUrl: must be an http(s) URL or a data URL")
	}
}

func normalizeDataURL(raw string) (string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok || !strings.HasPrefix(header, "image/") || !strings.HasSuffix(header, ";base64") {
		return "", domain.NewValidation("imageUrl: data URL must be a base64 encoded image")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxUploadSize {
		return "", domain.NewValidation("imageUrl: image must be 10MB or smaller")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.NewValidation("imageUrl: invalid base64 payload")
	}

	encoded, err := processImage(data)
	if err != nil {
		return "", domain.NewValidation("imageUrl: " + err.Error())
	}
	if len(encoded) > maxInlineResult {
		return "", domain.NewValidation("imageUrl: image is too large after compression")
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// processImage checks the declared dimensions against maxImagePixels, then
// decodes the image, resizes it to maxImageWidth when wider
// and encodes it as JPEG.
func processImage(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image dimensions %dx%d exceed the 40 megapixel limit", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
