package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xelth-com/hostelprintgo/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore persists print requests in PostgreSQL via GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a RequestStore backed by the given GORM connection.
func NewGormStore(db *gorm.DB) RequestStore {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, req *models.PrintRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create print request: %w", err)
	}
	return nil
}

func (s *gormStore) Get(ctx context.Context, id string) (*models.PrintRequest, error) {
	// Reject malformed ids before they hit the uuid column
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var req models.PrintRequest
	err := s.db.WithContext(ctx).First(&req, "request_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch print request: %w", err)
	}
	return &req, nil
}

func (s *gormStore) List(ctx context.Context) ([]models.PrintRequest, error) {
	var reqs []models.PrintRequest
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list print requests: %w", err)
	}
	return reqs, nil
}

func (s *gormStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		// Unknown ids are deleted "successfully"
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&models.PrintRequest{}, "request_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete print request: %w", err)
	}
	return nil
}

func (s *gormStore) Confirm(ctx context.Context, id string) (*models.PrintRequest, error) {
	var out *models.PrintRequest
	err := s.withLockedRequest(ctx, id, func(tx *gorm.DB, req *models.PrintRequest) error {
		if req.IsConfirmed {
			// Idempotent: the row is left untouched
			out = req
			return nil
		}
		if err := tx.Model(req).Update("is_confirmed", true).Error; err != nil {
			return fmt.Errorf("confirm print request: %w", err)
		}
		req.IsConfirmed = true
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormStore) ReplaceDocument(ctx context.Context, requestID, docID string, ref models.DocumentRef) (*models.PrintRequest, error) {
	var out *models.PrintRequest
	err := s.withLockedRequest(ctx, requestID, func(tx *gorm.DB, req *models.PrintRequest) error {
		docs := req.DocumentList()
		idx := indexOf(docs, docID)
		if idx < 0 {
			return ErrDocumentNotFound
		}
		// The slot keeps its id so existing links stay valid
		ref.ID = docID
		docs[idx] = ref
		if err := saveDocuments(tx, req, docs); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormStore) RemoveDocument(ctx context.Context, requestID, docID string) (*models.PrintRequest, error) {
	var out *models.PrintRequest
	err := s.withLockedRequest(ctx, requestID, func(tx *gorm.DB, req *models.PrintRequest) error {
		docs := req.DocumentList()
		idx := indexOf(docs, docID)
		if idx < 0 {
			return ErrDocumentNotFound
		}
		docs = append(docs[:idx], docs[idx+1:]...)
		if err := saveDocuments(tx, req, docs); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// withLockedRequest runs fn inside a transaction holding a row lock on the
// request, so concurrent fetch-mutate-persist sequences against the same id
// serialize instead of losing updates.
func (s *gormStore) withLockedRequest(ctx context.Context, id string, fn func(tx *gorm.DB, req *models.PrintRequest) error) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.PrintRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "request_id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch print request: %w", err)
		}
		return fn(tx, &req)
	})
}

func saveDocuments(tx *gorm.DB, req *models.PrintRequest, docs []models.DocumentRef) error {
	req.SetDocuments(docs)
	if err := tx.Model(req).Update("documents", datatypes.NewJSONType(docs)).Error; err != nil {
		return fmt.Errorf("update documents: %w", err)
	}
	return nil
}

func indexOf(docs []models.DocumentRef, docID string) int {
	for i, d := range docs {
		if d.ID == docID {
			return i
		}
	}
	return -1
}
