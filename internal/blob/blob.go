// Package blob resolves uploaded image bytes to a URL before thread
// submission. Size and MIME validation happen in the HTTP layer; the store
// just keeps bytes.
package blob

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists opaque blobs and returns a URL to fetch them back.
type Store interface {
	Put(data []byte, ext string) (url string, err error)
}

// DiskStore keeps blobs as files under Dir, served from URLPrefix.
type DiskStore struct {
	Dir       string
	URLPrefix string
}

func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (s *DiskStore) Put(data []byte, ext string) (string, error) {
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.URLPrefix + "/" + name, nil
}
