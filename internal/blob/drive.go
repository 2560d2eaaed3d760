package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const drivePrefix = "drive:"

// DriveStore keeps uploaded files in a Google Drive folder. Locators are
// "drive:<fileID>".
type DriveStore struct {
	svc      *drive.Service
	folderID string
}

// NewDriveStore builds a Drive-backed store from a service account
// credentials file. folderID is optional; empty means the account root.
func NewDriveStore(ctx context.Context, credentialsFile, folderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init drive client: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID}, nil
}

func (s *DriveStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	meta := &drive.File{Name: sanitizeName(name)}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	created, err := s.svc.Files.Create(meta).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload to drive: %w", err)
	}

	return drivePrefix + created.Id, nil
}

func (s *DriveStore) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	id, ok := strings.CutPrefix(locator, drivePrefix)
	if !ok || id == "" {
		return nil, ErrNotFound
	}

	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if isDriveNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("download from drive: %w", err)
	}
	return resp.Body, nil
}

func (s *DriveStore) Remove(ctx context.Context, locator string) error {
	id, ok := strings.CutPrefix(locator, drivePrefix)
	if !ok || id == "" {
		return nil
	}

	err := s.svc.Files.Delete(id).Context(ctx).Do()
	if err != nil && !isDriveNotFound(err) {
		return fmt.Errorf("delete from drive: %w", err)
	}
	return nil
}

func isDriveNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 404
}
