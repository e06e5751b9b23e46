// Package blob stores uploaded media on the local filesystem and hands out
// stable retrieval URLs under the public /media/ prefix.
package blob

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidName is returned for filenames or URLs that do not resolve to a
// location inside the media directory.
var ErrInvalidName = errors.New("invalid media name")

// Store is a filesystem-backed object store.
type Store struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// New creates a Store rooted at dir. baseURL is the public base the service
// is reachable at; returned URLs are baseURL + "/media/<section>/<name>".
func New(dir, baseURL string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Dir returns the root directory blobs are stored under.
func (s *Store) Dir() string { return s.dir }

// Save stores the blob under the given section and returns its retrieval URL.
// The stored name is a generated id prefixed to the (sanitized) original
// filename, so repeated uploads of the same file never collide.
func (s *Store) Save(section, filename string, r io.Reader) (string, error) {
	section = sanitizeSegment(section)
	filename = sanitizeSegment(filename)
	if section == "" || filename == "" {
		return "", ErrInvalidName
	}

	name := uuid.NewString() + "_" + filename
	subdir := filepath.Join(s.dir, section)
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		return "", fmt.Errorf("create section dir: %w", err)
	}

	dst := filepath.Join(subdir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close blob: %w", err)
	}

	return s.baseURL + "/media/" + section + "/" + name, nil
}

// Delete removes the blob a previously returned URL points at. An already
// absent object is success; all other failures are surfaced.
func (s *Store) Delete(url string) error {
	rel, err := s.relPath(url)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, rel)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// relPath maps a retrieval URL back to a path relative to the media dir,
// rejecting anything outside it.
func (s *Store) relPath(url string) (string, error) {
	prefix := s.baseURL + "/media/"
	if !strings.HasPrefix(url, prefix) {
		return "", ErrInvalidName
	}
	rel := path.Clean(strings.TrimPrefix(url, prefix))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", ErrInvalidName
	}
	return filepath.FromSlash(rel), nil
}

// sanitizeSegment reduces a name to its base and strips characters that could
// escape the media directory.
func sanitizeSegment(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
