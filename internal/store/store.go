package store

import (
	"context"
	"errors"

	"github.com/xelth-com/hostelprintgo/internal/models"
)

// ErrNotFound is returned when no print request exists for the given id.
var ErrNotFound = errors.New("print request not found")

// ErrDocumentNotFound is returned when a request exists but has no document
// with the given id.
var ErrDocumentNotFound = errors.New("document not found")

// RequestStore is the persistence boundary for print requests. Handlers only
// see this interface, so tests can substitute an in-memory implementation.
type RequestStore interface {
	// Create persists a new request and fills in its generated id.
	Create(ctx context.Context, req *models.PrintRequest) error

	// Get returns the request with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.PrintRequest, error)

	// List returns all requests, newest first.
	List(ctx context.Context) ([]models.PrintRequest, error)

	// Delete removes a request. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Confirm marks the request confirmed. Confirming an already confirmed
	// request is a no-op that does not touch the row.
	Confirm(ctx context.Context, id string) (*models.PrintRequest, error)

	// ReplaceDocument overwrites the document with the given id in place,
	// keeping its position and id.
	ReplaceDocument(ctx context.Context, requestID, docID string, ref models.DocumentRef) (*models.PrintRequest, error)

	// RemoveDocument deletes the document with the given id from the list.
	RemoveDocument(ctx context.Context, requestID, docID string) (*models.PrintRequest, error)
}
