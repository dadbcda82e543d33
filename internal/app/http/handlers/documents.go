package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bmbat/go_backend/internal/domain/document"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListDocuments returns the stored document list in order.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("documents list: %v", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []document.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// CreateDocument returns a blank document of the requested type. It is
// not persisted: the editor saves explicitly.
func (h *Handlers) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type document.Type `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		req.Type = document.TypeDevis
	}
	writeJSON(w, http.StatusCreated, document.New(req.Type))
}

// SaveDocument upserts one document into the stored list: an existing id
// is replaced in place, a new one is prepended. The saved copy has its
// VAT rates clamped and gets a fresh last-modified stamp.
func (h *Handlers) SaveDocument(w http.ResponseWriter, r *http.Request) {
	var d document.Document
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if d.ID == "" || d.ID != chi.URLParam(r, "id") {
		http.Error(w, "document id mismatch", http.StatusBadRequest)
		return
	}

	docs, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("document save id=%s load: %v", d.ID, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	saved := d.Sanitize().Touch()
	replaced := false
	for i := range docs {
		if docs[i].ID == saved.ID {
			docs[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append([]document.Document{saved}, docs...)
	}

	if err := h.Store.SaveAll(r.Context(), docs); err != nil {
		log.Printf("document save id=%s: %v", d.ID, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteDocument removes a document from the list. No soft delete.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	docs, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("document delete id=%s load: %v", id, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	kept := docs[:0]
	for _, d := range docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	if err := h.Store.SaveAll(r.Context(), kept); err != nil {
		log.Printf("document delete id=%s: %v", id, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTotals recomputes the derived figures for one document. Always
// computed from scratch, never cached.
func (h *Handlers) GetTotals(w http.ResponseWriter, r *http.Request) {
	d, ok := h.findDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, document.ComputeTotals(d))
}

// SignDocument records the client signature on a stored document.
func (h *Handlers) SignDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Signature == "" {
		http.Error(w, "signature is required", http.StatusBadRequest)
		return
	}
	h.mutateDocument(w, r, func(d document.Document) document.Document {
		return d.Sign(req.Signature)
	})
}

// PayDocument marks an invoice as paid.
func (h *Handlers) PayDocument(w http.ResponseWriter, r *http.Request) {
	h.mutateDocument(w, r, func(d document.Document) document.Document {
		return d.MarkPaid()
	})
}

// ChangeDocumentType switches a stored document's type, rewriting the
// quote number prefix when it becomes an invoice.
func (h *Handlers) ChangeDocumentType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type document.Type `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}
	h.mutateDocument(w, r, func(d document.Document) document.Document {
		return d.WithType(req.Type)
	})
}

func (h *Handlers) findDocument(w http.ResponseWriter, r *http.Request) (document.Document, bool) {
	id := chi.URLParam(r, "id")
	docs, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("document lookup id=%s: %v", id, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return document.Document{}, false
	}
	for _, d := range docs {
		if d.ID == id {
			return d, true
		}
	}
	http.Error(w, "document not found", http.StatusNotFound)
	return document.Document{}, false
}

func (h *Handlers) mutateDocument(w http.ResponseWriter, r *http.Request, fn func(document.Document) document.Document) {
	id := chi.URLParam(r, "id")
	docs, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("document mutate id=%s load: %v", id, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		updated := fn(docs[i]).Touch()
		docs[i] = updated
		if err := h.Store.SaveAll(r.Context(), docs); err != nil {
			log.Printf("document mutate id=%s save: %v", id, err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, updated)
		return
	}
	http.Error(w, "document not found", http.StatusNotFound)
}
