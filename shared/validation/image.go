package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/studyhub-dev/studyhub/shared/domain"
	_ "golang.org/x/image/webp"
)

type ImageRules struct {
	MaxSize      int64
	AllowedMimes []string
}

// FormImage returns the validated image in form field name, or nil if the field is absent.
// The caller owns closing the returned image's Data.
func FormImage(r *http.Request, name string, rules ImageRules) (*domain.PendingImage, io.Closer, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[name]) == 0 {
		return nil, nil, nil
	}
	fh := r.MultipartForm.File[name][0]
	return ValidateImage(fh, rules)
}

// ValidateImage checks size, sniffed MIME type and decodability of an uploaded image.
func ValidateImage(fh *multipart.FileHeader, rules ImageRules) (*domain.PendingImage, io.Closer, error) {
	if fh.Size > rules.MaxSize {
		return nil, nil, ErrPayloadTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	mimeType, err := DetectMimeType(file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	if !allowed(mimeType, rules.AllowedMimes) {
		file.Close()
		return nil, nil, ErrInvalidMimeType
	}

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		file.Close()
		return nil, nil, ErrInvalidImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return &domain.PendingImage{
		Filename:  fh.Filename,
		MimeType:  mimeType,
		SizeBytes: fh.Size,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Data:      file,
	}, file, nil
}

// DetectMimeType sniffs the content; the client-supplied Content-Type is ignored.
func DetectMimeType(file io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}

func allowed(mimeType string, allowedMimes []string) bool {
	for _, m := range allowedMimes {
		if m == mimeType {
			return true
		}
	}
	return false
}
