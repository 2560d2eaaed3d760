package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a locator does not resolve to stored bytes.
var ErrNotFound = errors.New("blob not found")

// Store saves raw file bytes and hands back an opaque locator that can be
// used to stream or remove them later. Implementations: local disk and
// Google Drive.
type Store interface {
	// Save stores the reader's bytes under a new locator. The original
	// filename is only a naming hint; uniqueness is the store's problem.
	Save(ctx context.Context, name, contentType string, r io.Reader) (locator string, err error)

	// Open streams the bytes back for a locator returned by Save.
	Open(ctx context.Context, locator string) (io.ReadCloser, error)

	// Remove deletes the stored bytes. Removing an unknown locator is not
	// an error.
	Remove(ctx context.Context, locator string) error
}
