package fs

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage keeps uploaded media on the local disk under rootPath/<kind>/.
type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// Use filepath.Clean to prevent path traversal issues like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

func (s *Storage) Root() string {
	return s.rootPath
}

// Save writes data to <kind>/<uuid><ext> and returns that slash-separated relative path.
func (s *Storage) Save(data io.Reader, kind, ext string) (string, error) {
	if !filepath.IsLocal(kind) || strings.ContainsAny(ext, `/\`) {
		return "", fmt.Errorf("invalid media location %q %q", kind, ext)
	}

	relativePath := path.Join(kind, uuid.NewString()+ext)
	fullPath := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return relativePath, nil
}

// Delete removes one file. A file that is already gone is not an error.
func (s *Storage) Delete(relativePath string) error {
	fullPath, err := s.resolve(relativePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Storage) resolve(relativePath string) (string, error) {
	local := filepath.FromSlash(relativePath)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("media path %q escapes storage root", relativePath)
	}
	return filepath.Join(s.rootPath, local), nil
}
