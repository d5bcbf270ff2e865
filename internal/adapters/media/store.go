// Package media persists uploaded files (project submissions, lesson videos,
// internship materials) under a local media directory and hands out the
// stored names that the database references.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrBadName is returned when a stored name tries to escape the media dir.
var ErrBadName = errors.New("invalid media file name")

// Store writes and reads files under a single base directory.
type Store struct {
	dir string
}

// NewStore creates a media store rooted at dir.
// PRE: dir is non-empty
// POST: dir exists
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes src to a new file and returns the stored name. The name is
// "<prefix>_<8 hex>_<sanitized original>" so repeat uploads of the same
// file never collide.
// PRE: prefix and originalName are non-empty; src is a valid reader
// POST: file exists under the media dir; returned name references it
func (s *Store) Save(prefix, originalName string, src io.Reader) (string, error) {
	name := StoredName(prefix, originalName)
	fullPath := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	return name, nil
}

// Open returns a reader for a stored file.
// PRE: name was returned by Save
// POST: caller closes the returned file
func (s *Store) Open(name string) (*os.File, error) {
	full, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Remove deletes a stored file. Removing a missing file is not an error.
// PRE: name was returned by Save
func (s *Store) Remove(name string) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolve joins name under the base dir and refuses path traversal.
func (s *Store) resolve(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") {
		return "", ErrBadName
	}
	full := filepath.Join(s.dir, filepath.Clean("/"+name))
	return full, nil
}

// StoredName builds the on-disk name for an upload.
func StoredName(prefix, originalName string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "_" + token + "_" + sanitize(originalName)
}

// sanitize strips directory components and characters that would not
// survive a filesystem or a Content-Disposition header.
func sanitize(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
