package gofpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"bmbat/go_backend/internal/domain/branding"
	"bmbat/go_backend/internal/domain/document"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

var typeLabels = map[document.Type]string{
	document.TypeDevis:      "DEVIS",
	document.TypeFacture:    "FACTURE",
	document.TypeNoteCredit: "NOTE DE CRÉDIT",
	document.TypeRapport:    "RAPPORT DE CHANTIER",
}

// Generate renders the document as an A4 page set: header with the
// company identity, client and site blocks, one table per section and,
// except for reports, the VAT breakdown and totals.
func (g *Generator) Generate(d document.Document, b branding.Branding) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(typeLabels[d.Type]+" "+d.Number), false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(120, 8, tr(b.CompanyName))
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(typeLabels[d.Type]), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(120, 4, tr(b.Address))
	pdf.CellFormat(0, 4, tr("N° "+d.Number), "", 1, "R", false, 0, "")
	pdf.Cell(120, 4, tr(b.VAT+" | "+b.Phone))
	pdf.CellFormat(0, 4, tr("Date "+d.Date), "", 1, "R", false, 0, "")
	pdf.Cell(120, 4, tr(b.Email))
	pdf.Ln(8)
	pdf.SetTextColor(0, 0, 0)

	// Client / site blocks
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(95, 5, tr("CLIENT"))
	pdf.CellFormat(0, 5, tr("CHANTIER"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(95, 4, tr(d.Client.Name))
	pdf.CellFormat(0, 4, tr(d.Site.Address), "", 1, "L", false, 0, "")
	pdf.Cell(95, 4, tr(d.Client.Address))
	pdf.CellFormat(0, 4, tr(d.Site.City), "", 1, "L", false, 0, "")
	pdf.Cell(95, 4, tr(strings.TrimSpace(d.Client.City+" "+d.Client.VAT)))
	pdf.Ln(8)

	// Object
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Objet : "+d.Object), "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	if d.Type == document.TypeRapport {
		g.writeReportBody(pdf, tr, d)
	} else {
		g.writeBillingBody(pdf, tr, d)
	}

	g.writeSignature(pdf, tr, d)

	// Footer
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(130, 130, 130)
	if d.Type == document.TypeRapport {
		pdf.CellFormat(0, 4, tr("Ce document est un rapport technique et ne vaut pas facture."), "T", 1, "C", false, 0, "")
	} else {
		pdf.CellFormat(0, 4, tr("Conditions : Acompte 45% à la commande. Solde à réception de facture."), "T", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 4, tr("Compte Bancaire : "+b.IBAN), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeBillingBody(pdf *gofpdf.Fpdf, tr func(string) string, d document.Document) {
	sign := ""
	if d.Type == document.TypeNoteCredit {
		sign = "-"
	}

	for _, s := range d.Sections {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 6, tr(strings.ToUpper(s.Title)), "", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "B", 7)
		pdf.Cell(90, 5, tr("Description"))
		pdf.CellFormat(15, 5, tr("Qté"), "", 0, "C", false, 0, "")
		pdf.CellFormat(15, 5, tr("Unité"), "", 0, "C", false, 0, "")
		pdf.CellFormat(25, 5, tr("P.U."), "", 0, "R", false, 0, "")
		pdf.CellFormat(15, 5, tr("TVA"), "", 0, "C", false, 0, "")
		pdf.CellFormat(0, 5, tr("Total"), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, it := range s.Items {
			pdf.Cell(90, 5, tr(trim(it.Description, 60)))
			pdf.CellFormat(15, 5, formatQty(it.Qty), "", 0, "C", false, 0, "")
			pdf.CellFormat(15, 5, tr(it.Unit), "", 0, "C", false, 0, "")
			pdf.CellFormat(25, 5, tr(euro(it.Price)), "", 0, "R", false, 0, "")
			pdf.CellFormat(15, 5, fmt.Sprintf("%.0f%%", it.VAT), "", 0, "C", false, 0, "")
			pdf.CellFormat(0, 5, tr(sign+euro(it.Qty*it.Price)), "B", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	t := document.ComputeTotals(d)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 8)
	for _, bucket := range t.Breakdown {
		pdf.Cell(120, 4, "")
		pdf.Cell(40, 4, tr(fmt.Sprintf("TVA %.0f%% (%s)", bucket.Rate, euro(bucket.Base))))
		pdf.CellFormat(0, 4, tr(euro(bucket.Tax)), "", 1, "R", false, 0, "")
	}
	pdf.Cell(120, 5, "")
	pdf.Cell(40, 5, tr("Total HT"))
	pdf.CellFormat(0, 5, tr(euro(t.HT)), "", 1, "R", false, 0, "")
	pdf.Cell(120, 5, "")
	pdf.Cell(40, 5, tr("Total TVA"))
	pdf.CellFormat(0, 5, tr(euro(t.VAT)), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(120, 6, "")
	pdf.Cell(40, 6, tr("Total TTC"))
	pdf.CellFormat(0, 6, tr(euro(t.TTC)), "T", 1, "R", false, 0, "")

	switch d.Type {
	case document.TypeDevis:
		if d.Deposit != 0 {
			pdf.SetFont("Helvetica", "", 9)
			pdf.Cell(120, 6, "")
			pdf.Cell(40, 6, tr(fmt.Sprintf("Acompte %.0f%%", d.Deposit)))
			pdf.CellFormat(0, 6, tr(euro(t.DepositAmount)), "", 1, "R", false, 0, "")
		}
	case document.TypeNoteCredit:
		pdf.Cell(120, 7, "")
		pdf.Cell(40, 7, tr("NET EN VOTRE FAVEUR"))
		pdf.CellFormat(0, 7, tr(euro(t.NetToPay)), "T", 1, "R", false, 0, "")
	default:
		pdf.Cell(120, 7, "")
		pdf.Cell(40, 7, tr("SOLDE À PAYER"))
		pdf.CellFormat(0, 7, tr(euro(t.NetToPay)), "T", 1, "R", false, 0, "")
	}
}

func (g *Generator) writeReportBody(pdf *gofpdf.Fpdf, tr func(string) string, d document.Document) {
	for _, s := range d.Sections {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 6, tr(strings.ToUpper(s.Title)), "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, it := range s.Items {
			pdf.MultiCell(0, 5, tr(it.Description), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}
}

func (g *Generator) writeSignature(pdf *gofpdf.Fpdf, tr func(string) string, d document.Document) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(130, 130, 130)
	pdf.Cell(60, 4, tr("Signature Client"))
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	img, format, ok := decodeSignature(d.Signature)
	if !ok {
		pdf.SetFont("Helvetica", "I", 7)
		pdf.Cell(60, 10, tr("Non signé"))
		pdf.Ln(10)
		return
	}
	name := "signature-" + d.ID
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: format}, bytes.NewReader(img))
	x, y := pdf.GetXY()
	pdf.ImageOptions(name, x, y, 40, 0, false, gofpdf.ImageOptions{ImageType: format}, 0, "")
	pdf.Ln(18)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Cell(60, 4, tr("Signé le "+d.SignatureDate))
	pdf.Ln(4)
}

// decodeSignature unpacks a data URL captured by the signature pad.
// Anything unexpected leaves the document rendered as unsigned.
func decodeSignature(dataURL string) ([]byte, string, bool) {
	if dataURL == "" {
		return nil, "", false
	}
	var format string
	var rest string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png;base64,"):
		format, rest = "PNG", strings.TrimPrefix(dataURL, "data:image/png;base64,")
	case strings.HasPrefix(dataURL, "data:image/jpeg;base64,"):
		format, rest = "JPG", strings.TrimPrefix(dataURL, "data:image/jpeg;base64,")
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, "", false
	}
	return raw, format, true
}

func euro(amount float64) string {
	return fmt.Sprintf("%.2f €", amount)
}

func formatQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%.0f", q)
	}
	return fmt.Sprintf("%.2f", q)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
