package handlers

import (
	"fmt"
	"log"
	"net/http"

	"bmbat/go_backend/internal/domain/document"
)

// DocumentPDF renders a stored document as an A4 PDF.
func (h *Handlers) DocumentPDF(w http.ResponseWriter, r *http.Request) {
	d, ok := h.findDocument(w, r)
	if !ok {
		return
	}
	b, err := h.Store.LoadBranding(r.Context())
	if err != nil {
		log.Printf("document pdf id=%s branding: %v", d.ID, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.PDF.Generate(d, b)
	if err != nil {
		log.Printf("document pdf id=%s: %v", d.ID, err)
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Number+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// DocumentEPC returns the SEPA transfer payload encoded into the payment
// QR shown on quotes and invoices. Credit notes, reports and zero-value
// documents carry no payment code.
func (h *Handlers) DocumentEPC(w http.ResponseWriter, r *http.Request) {
	d, ok := h.findDocument(w, r)
	if !ok {
		return
	}
	if d.Type == document.TypeRapport || d.Type == document.TypeNoteCredit {
		http.Error(w, "document type carries no payment code", http.StatusConflict)
		return
	}

	totals := document.ComputeTotals(d)
	if totals.TTC <= 0 {
		http.Error(w, "document has no amount to pay", http.StatusConflict)
		return
	}

	b, err := h.Store.LoadBranding(r.Context())
	if err != nil {
		log.Printf("document epc id=%s branding: %v", d.ID, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	if !b.CanReceivePayment() {
		http.Error(w, "no bank account configured", http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"payload": b.EPCPayload(totals.NetToPay, d.Number),
	})
}
