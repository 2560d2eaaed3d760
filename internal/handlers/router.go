package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/hostelprintgo/internal/blob"
	"github.com/xelth-com/hostelprintgo/internal/render"
	"github.com/xelth-com/hostelprintgo/internal/store"
)

// Router wraps the mux router together with the stores and renderer
type Router struct {
	*mux.Router
	store            store.RequestStore
	blobs            blob.Store
	pages            *render.Renderer
	requireDocuments bool
}

// Options tweaks router behavior
type Options struct {
	// RequireDocuments makes /submit reject empty submissions and hides
	// zero-document records behind a redirect.
	RequireDocuments bool

	// UploadDir enables static serving of disk-stored uploads when set.
	UploadDir string
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(st store.RequestStore, blobs blob.Store, pages *render.Renderer, opts Options) *Router {
	r := &Router{
		Router:           mux.NewRouter(),
		store:            st,
		blobs:            blobs,
		pages:            pages,
		requireDocuments: opts.RequireDocuments,
	}

	// Pages
	r.HandleFunc("/", r.home).Methods("GET")
	r.HandleFunc("/contact", r.contact).Methods("GET")
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Intake workflow
	r.HandleFunc("/submit", r.submitRequest).Methods("POST")
	r.HandleFunc("/records-view/{id}", r.viewRecord).Methods("GET")
	r.HandleFunc("/confirm-record/{id}", r.confirmRecord).Methods("POST")
	r.HandleFunc("/confirmed/{id}", r.confirmedPage).Methods("GET")
	r.HandleFunc("/confirmed/{id}/slip.pdf", r.confirmationSlip).Methods("GET")
	r.HandleFunc("/confirmed/{id}/qr.png", r.referenceQR).Methods("GET")
	r.HandleFunc("/requests", r.listRequests).Methods("GET")
	r.HandleFunc("/delete-request/{id}", r.deleteRequest).Methods("POST")

	// Embedded documents
	r.HandleFunc("/edit-document/{recordId}/{docId}", r.editDocument).Methods("POST")
	r.HandleFunc("/delete-document/{recordId}/{docId}", r.deleteDocument).Methods("POST")
	r.HandleFunc("/download/{id}/{file}", r.downloadDocument).Methods("GET")

	// Debug dump of all records
	r.HandleFunc("/records", r.debugDump).Methods("GET")

	// Static serving of disk-backend uploads
	if opts.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// renderError shows the error page with a user-facing message
func (r *Router) renderError(w http.ResponseWriter, status int, message string) {
	r.pages.HTML(w, status, "error.html", map[string]string{"Message": message})
}

// redirect is the uniform "swallow and go somewhere safe" response
func redirect(w http.ResponseWriter, req *http.Request, location string) {
	http.Redirect(w, req, location, http.StatusSeeOther)
}
