package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/hostelprintgo/internal/blob"
	"github.com/xelth-com/hostelprintgo/internal/models"
	"github.com/xelth-com/hostelprintgo/internal/store"
	"github.com/xelth-com/hostelprintgo/internal/upload"
)

// editDocument replaces one embedded document with a freshly uploaded file.
// The allow-list applies to fresh submissions only, not replacements.
func (r *Router) editDocument(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	recordID, docID := vars["recordId"], vars["docId"]
	ctx := req.Context()

	record, err := r.store.Get(ctx, recordID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("❌ Failed to fetch request %s: %v", recordID, err)
		}
		redirect(w, req, "/")
		return
	}
	old, ok := record.FindDocument(docID)
	if !ok {
		// Precondition violation: no such slot, nothing is written
		redirect(w, req, "/records-view/"+recordID)
		return
	}

	files, err := upload.Collect(req, "document", 1, false)
	if err != nil || len(files) == 0 {
		if err != nil {
			log.Printf("❌ Replace upload failed for %s: %v", recordID, err)
		}
		redirect(w, req, "/records-view/"+recordID)
		return
	}
	f := files[0]

	locator, err := r.blobs.Save(ctx, f.OriginalName, f.ContentType, bytes.NewReader(f.Data))
	if err != nil {
		log.Printf("❌ Blob store write failed: %v", err)
		redirect(w, req, "/records-view/"+recordID)
		return
	}

	ref := models.NewDocumentRef(locator, f.OriginalName, f.ContentType)
	if _, err := r.store.ReplaceDocument(ctx, recordID, docID, ref); err != nil {
		_ = r.blobs.Remove(ctx, locator)
		if errors.Is(err, store.ErrNotFound) {
			redirect(w, req, "/")
			return
		}
		if !errors.Is(err, store.ErrDocumentNotFound) {
			log.Printf("❌ Failed to replace document %s/%s: %v", recordID, docID, err)
		}
		redirect(w, req, "/records-view/"+recordID)
		return
	}

	// Release the displaced blob
	_ = r.blobs.Remove(ctx, old.Locator)
	redirect(w, req, "/records-view/"+recordID)
}

// deleteDocument removes one embedded document from the record
func (r *Router) deleteDocument(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	recordID, docID := vars["recordId"], vars["docId"]
	ctx := req.Context()

	record, err := r.store.Get(ctx, recordID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("❌ Failed to fetch request %s: %v", recordID, err)
		}
		redirect(w, req, "/")
		return
	}
	old, ok := record.FindDocument(docID)

	if _, err := r.store.RemoveDocument(ctx, recordID, docID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			redirect(w, req, "/")
			return
		}
		if !errors.Is(err, store.ErrDocumentNotFound) {
			log.Printf("❌ Failed to delete document %s/%s: %v", recordID, docID, err)
		}
		redirect(w, req, "/records-view/"+recordID)
		return
	}

	if ok {
		_ = r.blobs.Remove(ctx, old.Locator)
	}
	redirect(w, req, "/records-view/"+recordID)
}

// downloadDocument streams a stored file back under its original filename.
// The {file} segment matches the document id or the original name.
func (r *Router) downloadDocument(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	recordID, key := vars["id"], vars["file"]
	ctx := req.Context()

	record, err := r.store.Get(ctx, recordID)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	ref, ok := record.FindDocument(key)
	if !ok {
		http.NotFound(w, req)
		return
	}

	rc, err := r.blobs.Open(ctx, ref.Locator)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			http.NotFound(w, req)
			return
		}
		log.Printf("❌ Failed to open blob %s: %v", ref.Locator, err)
		respondError(w, http.StatusInternalServerError, "Failed to read document")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", ref.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ref.OriginalName))
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("❌ Download of %s aborted: %v", ref.Locator, err)
	}
}
