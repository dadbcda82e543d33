package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"bmbat/go_backend/internal/domain/branding"
)

func (h *Handlers) GetBranding(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.LoadBranding(r.Context())
	if err != nil {
		log.Printf("branding load: %v", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) PutBranding(w http.ResponseWriter, r *http.Request) {
	var b branding.Branding
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.Store.SaveBranding(r.Context(), b); err != nil {
		log.Printf("branding save: %v", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
