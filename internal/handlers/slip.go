package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xelth-com/hostelprintgo/internal/slip"
)

// confirmationSlip serves the printable PDF slip for a confirmed request
func (r *Router) confirmationSlip(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.Get(req.Context(), id)
	if err != nil {
		redirect(w, req, "/")
		return
	}

	pdfBytes, err := slip.Generate(record)
	if err != nil {
		log.Printf("❌ Failed to generate slip for %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate slip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"slip_%s.pdf\"", record.ID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

// referenceQR serves the reference id QR code shown on the confirmation page
func (r *Router) referenceQR(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	record, err := r.store.Get(req.Context(), id)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	png, err := slip.ReferenceQR(record.ID)
	if err != nil {
		log.Printf("❌ Failed to encode QR for %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}
