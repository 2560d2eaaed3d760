package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

// ErrFileType rejects uploads outside the allow-list. The message is shown
// to the user verbatim.
var ErrFileType = errors.New("Only PDF, PNG, JPG files are allowed")

// ErrNoFiles is returned when a submission carries no files and the gate was
// told to require at least one.
var ErrNoFiles = errors.New("No files uploaded")

// ErrTooManyFiles is returned when a submission exceeds the per-request cap.
var ErrTooManyFiles = errors.New("Too many files uploaded")

// MaxSubmitFiles caps one form submission.
const MaxSubmitFiles = 10

// Multipart bodies are buffered up to this before spilling to disk.
const maxMemory = 32 << 20

var allowed = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

// File is one accepted upload, fully buffered.
type File struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// Collect parses the request's multipart form and returns the files under
// the given field. With restrict set, every file must pass the allow-list on
// both its declared Content-Type and its sniffed payload type; the first
// rejected file fails the whole batch, before anything is persisted.
func Collect(req *http.Request, field string, max int, restrict bool) ([]File, error) {
	if err := req.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	if req.MultipartForm == nil {
		return nil, nil
	}

	headers := req.MultipartForm.File[field]
	if len(headers) > max {
		return nil, ErrTooManyFiles
	}

	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		declared := fh.Header.Get("Content-Type")
		if restrict && !allowed[declared] {
			return nil, ErrFileType
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read uploaded file %q: %w", fh.Filename, err)
		}

		// The declared type is client-controlled; cross-check the bytes
		if restrict && !sniffAllowed(data) {
			return nil, ErrFileType
		}

		files = append(files, File{
			OriginalName: fh.Filename,
			ContentType:  declared,
			Data:         data,
		})
	}

	return files, nil
}

func sniffAllowed(data []byte) bool {
	t := mimetype.Detect(data)
	return t.Is("application/pdf") || t.Is("image/png") || t.Is("image/jpeg")
}
