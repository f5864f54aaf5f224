package service

import (
	"fmt"
	"io"

	"github.com/studyhub-dev/studyhub/backend/internal/service/utils"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

// Media kinds are the top-level directories under the media root.
const (
	MediaKindPosts  = "posts"
	MediaKindEvents = "events"
)

// DefaultMaxDecodedImageSize caps the RGBA size an upload may decode to.
const DefaultMaxDecodedImageSize = 256 << 20

var ErrUnprocessableImage = errors.Validation("Invalid image file")

type MediaStorage interface {
	// Save stores data under kind with a generated name and returns the relative path.
	Save(data io.Reader, kind, ext string) (string, error)

	// Delete removes a single file. Missing files are not an error.
	Delete(relativePath string) error
}

var extensionByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type Media struct {
	storage        MediaStorage
	maxDecodedSize int64
}

func NewMedia(storage MediaStorage, maxDecodedSize int64) *Media {
	if maxDecodedSize <= 0 {
		maxDecodedSize = DefaultMaxDecodedImageSize
	}
	return &Media{storage: storage, maxDecodedSize: maxDecodedSize}
}

// SaveImage strips metadata from a validated upload, writes it and returns
// the path to store on the record.
func (m *Media) SaveImage(img *domain.PendingImage, kind string) (string, error) {
	clean, err := utils.SanitizeImage(img, m.maxDecodedSize)
	if err != nil {
		logger.Log.Debug("image rejected", "filename", img.Filename, "error", err)
		return "", ErrUnprocessableImage
	}

	ext, ok := extensionByMime[clean.MimeType]
	if !ok {
		return "", fmt.Errorf("no extension for mime type %q", clean.MimeType)
	}
	path, err := m.storage.Save(clean.Data, kind, ext)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// Remove deletes a stored image. Failures are only logged since the owning record is already gone.
func (m *Media) Remove(path string) {
	if path == "" {
		return
	}
	if err := m.storage.Delete(path); err != nil {
		logger.Log.Warn("failed to delete media file", "path", path, "error", err)
	}
}
