package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"policy-vault.backend/internal/domain/repositories"
)

var nowMillis = func() int64 { return time.Now().UnixMilli() }

// LocalStore keeps uploaded documents on the local filesystem under dir and
// serves them under urlPrefix. Generated names combine the upload timestamp
// with the original filename, so repeated uploads of the same file never collide.
type LocalStore struct {
	dir       string
	urlPrefix string
}

var _ repositories.FileStore = (*LocalStore)(nil)

// NewLocalStore creates a local file store, creating dir if needed
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Store writes content to disk and returns the public relative path
func (s *LocalStore) Store(_ context.Context, filename string, content io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", nowMillis(), sanitizeFilename(filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Delete removes the file at a previously returned path
func (s *LocalStore) Delete(_ context.Context, path string) error {
	name := strings.TrimPrefix(path, s.urlPrefix+"/")
	// Paths come from our own records, but never follow a traversal anyway.
	name = filepath.Base(name)

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return repositories.ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Dir returns the directory documents are stored in
func (s *LocalStore) Dir() string {
	return s.dir
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	return name
}
