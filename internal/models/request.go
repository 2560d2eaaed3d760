package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// DocumentRef describes one uploaded file attached to a print request.
// Each ref gets a stable id at upload time; edit/delete routes address
// documents by this id rather than by list position.
type DocumentRef struct {
	ID           string `json:"id"`
	Locator      string `json:"locator"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
}

// NewDocumentRef builds a ref for a freshly stored upload, assigning its
// stable id.
func NewDocumentRef(locator, originalName, mimeType string) DocumentRef {
	return DocumentRef{
		ID:           uuid.NewString(),
		Locator:      locator,
		OriginalName: originalName,
		MimeType:     mimeType,
	}
}

// PrintRequest represents one hostel printing request
type PrintRequest struct {
	ID          string                            `gorm:"column:request_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string                            `gorm:"not null" json:"name"`
	Phone       string                            `gorm:"not null" json:"phone"`
	HostelNo    string                            `gorm:"not null" json:"hostelNo"`
	RoomNo      string                            `gorm:"not null" json:"roomNo"`
	Documents   datatypes.JSONType[[]DocumentRef] `gorm:"type:jsonb" json:"documents"`
	IsConfirmed bool                              `gorm:"default:false" json:"isConfirmed"`
	Status      string                            `gorm:"default:'Pending'" json:"status"` // Pending, Printed (no route transitions it yet)

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name
func (PrintRequest) TableName() string {
	return "print_requests"
}

// DocumentList returns the embedded document refs in insertion order.
func (p *PrintRequest) DocumentList() []DocumentRef {
	return p.Documents.Data()
}

// SetDocuments replaces the embedded document list.
func (p *PrintRequest) SetDocuments(refs []DocumentRef) {
	p.Documents = datatypes.NewJSONType(refs)
}

// FindDocument looks up a ref by id, falling back to the original
// filename (the download route accepts either).
func (p *PrintRequest) FindDocument(key string) (DocumentRef, bool) {
	for _, ref := range p.DocumentList() {
		if ref.ID == key || ref.OriginalName == key {
			return ref, true
		}
	}
	return DocumentRef{}, false
}

// Validate checks requester fields at the service boundary.
func (p *PrintRequest) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !phonePattern.MatchString(p.Phone) {
		return fmt.Errorf("phone must be exactly 10 digits")
	}
	if p.HostelNo == "" {
		return fmt.Errorf("hostel number is required")
	}
	if p.RoomNo == "" {
		return fmt.Errorf("room number is required")
	}
	return nil
}
