package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ImageStore writes uploaded frames to a local directory under generated,
// collision-resistant names. Only the stored filename goes into the database;
// serving the artifacts back is out of scope.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename strips path components and anything outside a conservative
// character set from a client-supplied filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "upload"
	}
	return name
}

// Save streams the upload to disk and returns the stored filename,
// "<uuid-hex>_<sanitized original name>".
func (s *ImageStore) Save(src io.Reader, originalName string) (string, error) {
	stored := uuid.New().String() + "_" + sanitizeFilename(originalName)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to finish upload: %w", err)
	}

	return stored, nil
}

// Remove deletes a stored artifact. The recorder calls it when the database
// insert fails after the file was already written.
func (s *ImageStore) Remove(storedName string) error {
	return os.Remove(filepath.Join(s.dir, storedName))
}
