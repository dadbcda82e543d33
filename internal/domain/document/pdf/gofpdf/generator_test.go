package gofpdf

import (
	"bytes"
	"testing"

	"bmbat/go_backend/internal/domain/branding"
	"bmbat/go_backend/internal/domain/document"
)

func billableDocument(t *testing.T, typ document.Type) document.Document {
	t.Helper()
	d := document.New(typ)
	d.Object = "Rénovation salle de bain"
	d.Sections[0].Items = []document.LineItem{
		{ID: document.NewID(), Description: "Carrelage sol 60x60", Qty: 12.5, Unit: document.UnitM2, Price: 85, VAT: 6},
		{ID: document.NewID(), Description: "Main d'œuvre pose", Qty: 2, Unit: document.UnitHour, Price: 350, VAT: 21},
	}
	return d
}

func TestGenerateProducesPDF(t *testing.T) {
	for _, typ := range []document.Type{
		document.TypeDevis, document.TypeFacture, document.TypeNoteCredit, document.TypeRapport,
	} {
		out, err := New().Generate(billableDocument(t, typ), branding.Default())
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			t.Fatalf("%s: output does not look like a PDF: %q", typ, out[:8])
		}
	}
}

func TestGenerateWithSignature(t *testing.T) {
	d := billableDocument(t, document.TypeDevis)
	// 1x1 white PNG
	d.Signature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="
	d.SignatureDate = "2026-08-29"

	out, err := New().Generate(d, branding.Default())
	if err != nil {
		t.Fatalf("generate signed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestGenerateIgnoresBadSignatureData(t *testing.T) {
	d := billableDocument(t, document.TypeFacture)
	d.Signature = "data:image/png;base64,not-base64!!"

	if _, _, ok := decodeSignature(d.Signature); ok {
		t.Fatalf("expected bad data URL to be rejected")
	}
	out, err := New().Generate(d, branding.Default())
	if err != nil {
		t.Fatalf("generate with bad signature: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestFormatQty(t *testing.T) {
	if got := formatQty(12); got != "12" {
		t.Fatalf("formatQty(12) = %q", got)
	}
	if got := formatQty(12.5); got != "12.50" {
		t.Fatalf("formatQty(12.5) = %q", got)
	}
}
