package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// locator prefix for files kept on the local disk; the same relative path is
// served statically under /uploads/.
const diskPrefix = "uploads/"

// DiskStore keeps uploaded files in a local directory, each under a
// uuid-prefixed name so colliding original filenames never overwrite.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns the store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	fileName := uuid.NewString() + "_" + sanitizeName(name)
	path := filepath.Join(s.dir, fileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return diskPrefix + fileName, nil
}

func (s *DiskStore) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	path, err := s.resolve(locator)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return f, nil
}

func (s *DiskStore) Remove(ctx context.Context, locator string) error {
	path, err := s.resolve(locator)
	if err != nil {
		// Unknown locators have nothing to remove
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func (s *DiskStore) resolve(locator string) (string, error) {
	name, ok := strings.CutPrefix(locator, diskPrefix)
	if !ok || name == "" {
		return "", ErrNotFound
	}
	// The locator must stay inside the upload dir
	if name != filepath.Base(name) {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, name), nil
}

func sanitizeName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload"
	}
	return base
}
