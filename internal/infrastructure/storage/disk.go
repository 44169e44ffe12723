// Package storage keeps uploaded point images on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxBaseNameLength = 100

// DiskStore saves uploads under a root directory using server-assigned names.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes content to a new file named "<uuid>-<sanitized filename>" and
// returns that name.
func (s *DiskStore) Save(filename string, content io.Reader) (string, error) {
	name := uuid.NewString() + "-" + sanitizeFilename(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file. Names that would escape the root are rejected.
func (s *DiskStore) Remove(storedName string) error {
	if storedName == "" || storedName != filepath.Base(storedName) || storedName == "." || storedName == ".." {
		return fmt.Errorf("invalid stored name %q", storedName)
	}
	if err := os.Remove(filepath.Join(s.dir, storedName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}
	return nil
}

// Handler serves stored files read-only. Directory listings are refused.
func (s *DiskStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// sanitizeFilename keeps the base name of a client-supplied filename and
// replaces anything outside [A-Za-z0-9._-] with '_'.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "upload"
	}
	if len(out) > maxBaseNameLength {
		out = out[len(out)-maxBaseNameLength:]
	}
	return out
}
