package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"bmbat/go_backend/internal/app/http/handlers/gen"
	"bmbat/go_backend/internal/domain/document"
)

// Generate runs the AI assistant: instruction text plus an optional
// base64 image go to the model, the response is normalized into a fresh
// document and returned without being persisted.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Instruction string        `json:"instruction"`
		Image       string        `json:"image"`
		Type        document.Type `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		req.Type = document.TypeDevis
	}

	reqID := fmt.Sprintf("gen-%d", time.Now().UnixNano())
	log.Printf("generate req=%s start type=%s instruction_len=%d image=%v",
		reqID, req.Type, len(req.Instruction), req.Image != "")

	doc, err := h.Gen.Generate(r.Context(), req.Instruction, req.Image, req.Type)
	if err != nil {
		h.writeGenError(w, reqID, err)
		return
	}

	log.Printf("generate req=%s done sections=%d materials=%d", reqID, len(doc.Sections), len(doc.Materials))
	writeJSON(w, http.StatusOK, doc)
}

// Audit sends the posted document's sections for a profitability review.
func (h *Handlers) Audit(w http.ResponseWriter, r *http.Request) {
	var d document.Document
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	reqID := fmt.Sprintf("audit-%d", time.Now().UnixNano())
	result, err := h.Gen.Audit(r.Context(), d)
	if err != nil {
		h.writeGenError(w, reqID, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DraftEmail asks the model for a cover email for the posted document.
func (h *Handlers) DraftEmail(w http.ResponseWriter, r *http.Request) {
	var d document.Document
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	reqID := fmt.Sprintf("email-%d", time.Now().UnixNano())
	text, err := h.Gen.DraftEmail(r.Context(), d)
	if err != nil {
		h.writeGenError(w, reqID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": text})
}

// writeGenError maps the generation error taxonomy to status codes. A
// missing credential blocks before any network call; transport and
// malformed-response failures surface the upstream detail verbatim and
// leave stored documents untouched.
func (h *Handlers) writeGenError(w http.ResponseWriter, reqID string, err error) {
	var malformed *document.MalformedResponseError
	switch {
	case errors.Is(err, gen.ErrMissingAPIKey):
		log.Printf("generate req=%s missing api key", reqID)
		http.Error(w, "generation service is not configured", http.StatusServiceUnavailable)
	case errors.As(err, &malformed):
		log.Printf("generate req=%s malformed response: %v", reqID, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Printf("generate req=%s upstream failure: %v", reqID, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
