package handlers

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/hostelprintgo/internal/models"
	"github.com/xelth-com/hostelprintgo/internal/store"
	"github.com/xelth-com/hostelprintgo/internal/upload"
)

// home renders the intake form
func (r *Router) home(w http.ResponseWriter, req *http.Request) {
	r.pages.HTML(w, http.StatusOK, "index.html", nil)
}

// contact renders the static info page
func (r *Router) contact(w http.ResponseWriter, req *http.Request) {
	r.pages.HTML(w, http.StatusOK, "contact.html", nil)
}

// submitRequest creates a new print request from the intake form
func (r *Router) submitRequest(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	files, err := upload.Collect(req, "documents", upload.MaxSubmitFiles, true)
	if err != nil {
		if errors.Is(err, upload.ErrFileType) || errors.Is(err, upload.ErrTooManyFiles) {
			r.renderError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("❌ Upload failed: %v", err)
		r.renderError(w, http.StatusBadRequest, "Upload failed. Please try again.")
		return
	}

	if r.requireDocuments && len(files) == 0 {
		r.renderError(w, http.StatusBadRequest, upload.ErrNoFiles.Error())
		return
	}

	record := &models.PrintRequest{
		Name:     req.FormValue("name"),
		Phone:    req.FormValue("phone"),
		HostelNo: req.FormValue("hostelNo"),
		RoomNo:   req.FormValue("roomNo"),
		Status:   "Pending",
	}
	if err := record.Validate(); err != nil {
		r.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	refs, err := r.saveUploads(ctx, files)
	if err != nil {
		log.Printf("❌ Blob store write failed: %v", err)
		r.renderError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	record.SetDocuments(refs)

	if err := r.store.Create(ctx, record); err != nil {
		log.Printf("❌ Failed to create print request: %v", err)
		// Don't leave orphaned blobs behind
		for _, ref := range refs {
			_ = r.blobs.Remove(ctx, ref.Locator)
		}
		r.renderError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	log.Printf("📄 Print request %s created with %d document(s)", record.ID, len(refs))
	redirect(w, req, "/records-view/"+record.ID)
}

// saveUploads writes each accepted file to the blob store and builds the
// document ref list. A failed write rolls back the earlier ones.
func (r *Router) saveUploads(ctx context.Context, files []upload.File) ([]models.DocumentRef, error) {
	refs := make([]models.DocumentRef, 0, len(files))
	for _, f := range files {
		locator, err := r.blobs.Save(ctx, f.OriginalName, f.ContentType, bytes.NewReader(f.Data))
		if err != nil {
			for _, ref := range refs {
				_ = r.blobs.Remove(ctx, ref.Locator)
			}
			return nil, err
		}
		refs = append(refs, models.NewDocumentRef(locator, f.OriginalName, f.ContentType))
	}
	return refs, nil
}

// viewRecord renders the detail page for one request
func (r *Router) viewRecord(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.Get(req.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("❌ Failed to fetch request %s: %v", id, err)
		}
		redirect(w, req, "/")
		return
	}
	if r.requireDocuments && len(record.DocumentList()) == 0 {
		redirect(w, req, "/")
		return
	}

	r.pages.HTML(w, http.StatusOK, "records.html", map[string]interface{}{"Record": record})
}

// confirmRecord transitions the request to confirmed (idempotent)
func (r *Router) confirmRecord(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.Confirm(req.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("❌ Failed to confirm request %s: %v", id, err)
		}
		redirect(w, req, "/")
		return
	}

	redirect(w, req, "/confirmed/"+record.ID)
}

// confirmedPage shows the reference id as proof of submission
func (r *Router) confirmedPage(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.Get(req.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("❌ Failed to fetch request %s: %v", id, err)
		}
		redirect(w, req, "/")
		return
	}

	r.pages.HTML(w, http.StatusOK, "confirmed.html", map[string]string{"Reference": record.ID})
}

// listRequests renders all requests, newest first
func (r *Router) listRequests(w http.ResponseWriter, req *http.Request) {
	requests, err := r.store.List(req.Context())
	if err != nil {
		log.Printf("❌ Failed to list requests: %v", err)
		redirect(w, req, "/")
		return
	}

	r.pages.HTML(w, http.StatusOK, "all-requests.html", map[string]interface{}{"Requests": requests})
}

// deleteRequest removes a request; unknown ids redirect the same way
func (r *Router) deleteRequest(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	if err := r.store.Delete(req.Context(), id); err != nil {
		log.Printf("❌ Failed to delete request %s: %v", id, err)
	}
	redirect(w, req, "/requests")
}

// debugDump returns every record verbatim as JSON
func (r *Router) debugDump(w http.ResponseWriter, req *http.Request) {
	requests, err := r.store.List(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}
