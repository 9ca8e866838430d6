package repositories

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned by FileStore.Delete when the path has no backing file.
var ErrFileNotFound = errors.New("file not found")

// FileStore persists uploaded policy documents and yields stable relative
// paths. Paths are served verbatim to clients, so a driver must never rewrite
// a path it has handed out.
type FileStore interface {
	// Store writes the file content and returns the relative path it is
	// reachable under (e.g. "/uploads/1700000000000-contract.pdf").
	Store(ctx context.Context, filename string, content io.Reader) (string, error)
	// Delete removes the file at a previously returned path. A missing file
	// yields ErrFileNotFound; callers treat that as best-effort success.
	Delete(ctx context.Context, path string) error
}
