package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/studyhub-dev/studyhub/shared/domain"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// SanitizeImage decodes and re-encodes an upload, which drops EXIF and any
// other embedded metadata. PNG stays PNG; every other format becomes JPEG.
func SanitizeImage(pending *domain.PendingImage, maxDecodedSize int64) (*domain.PendingImage, error) {
	// A crafted header can claim 65535x65535; refuse before image.Decode allocates it.
	if int64(pending.Width)*int64(pending.Height)*4 > maxDecodedSize {
		return nil, fmt.Errorf("image too large: %dx%d pixels, decoded size would exceed %d bytes limit", pending.Width, pending.Height, maxDecodedSize)
	}

	img, format, err := image.Decode(pending.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var (
		buf      bytes.Buffer
		mimeType string
		ext      string
	)
	if format == "png" {
		mimeType, ext = "image/png", ".png"
		err = png.Encode(&buf, img)
	} else {
		mimeType, ext = "image/jpeg", ".jpg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	base := strings.TrimSuffix(pending.Filename, filepath.Ext(pending.Filename))
	return &domain.PendingImage{
		Filename:  base + ext,
		MimeType:  mimeType,
		SizeBytes: int64(buf.Len()),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Data:      &buf,
	}, nil
}
