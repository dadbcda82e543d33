// Package document holds the billing document model and the computations
// attached to it: totals, numbering and normalization of AI-generated
// payloads. Everything here is pure; persistence lives in internal/infra.
package document

import (
	"strings"
	"time"
)

type Type string

const (
	TypeDevis      Type = "DEVIS"
	TypeFacture    Type = "FACTURE"
	TypeNoteCredit Type = "NOTE_CREDIT"
	TypeRapport    Type = "RAPPORT"
)

type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusSigned Status = "SIGNED"
	StatusPaid   Status = "PAID"
)

// Units offered by the editor. UnitNote marks non-priced report paragraphs.
const (
	UnitM2      = "m²"
	UnitML      = "ml"
	UnitM3      = "m³"
	UnitPiece   = "pce"
	UnitHour    = "h"
	UnitForfait = "Forfait"
	UnitU       = "U"
	UnitEns     = "Ens"
	UnitNote    = "Note"
)

// Legal Belgian VAT rates. Anything else coming from outside is remapped,
// never stored (see ClampVAT).
var LegalVATRates = []float64{0, 6, 12, 21}

type Client struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Email   string `json:"email"`
	VAT     string `json:"vat"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

type Site struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	VAT         float64 `json:"vat"`
}

type Section struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []LineItem `json:"items"`
}

// Material entries are informational only and never priced.
type Material struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Qty      string `json:"qty"`
	Desc     string `json:"desc"`
	Specs    string `json:"specs"`
}

type LaborLine struct {
	Trade string  `json:"trade"`
	Hours float64 `json:"hours"`
}

// Labor is a planning estimate; it never enters the financial totals.
type Labor struct {
	TotalHours        float64     `json:"totalHours"`
	EstimatedDuration string      `json:"estimatedDuration"`
	TeamSize          string      `json:"teamSize"`
	Breakdown         []LaborLine `json:"breakdown"`
}

type Document struct {
	ID            string     `json:"id"`
	Status        Status     `json:"status"`
	Number        string     `json:"number"`
	Type          Type       `json:"type"`
	Date          string     `json:"date"`
	DueDate       string     `json:"dueDate"`
	Deposit       float64    `json:"deposit"`
	Object        string     `json:"object"`
	Client        Client     `json:"client"`
	Site          Site       `json:"site"`
	Sections      []Section  `json:"sections"`
	Materials     []Material `json:"materials"`
	Labor         Labor      `json:"labor"`
	Signature     string     `json:"signature,omitempty"`
	SignatureDate string     `json:"signatureDate,omitempty"`
	LastModified  int64      `json:"lastModified"`
}

// New returns a blank document of the given type: fresh id, draft status,
// a number following the {letter}-{year}-{n} convention and one empty
// default section.
func New(t Type) Document {
	return Document{
		ID:      NewID(),
		Status:  StatusDraft,
		Number:  NewNumber(t),
		Type:    t,
		Date:    time.Now().Format("2006-01-02"),
		Deposit: 0,
		Object:  "Nouveau Dossier",
		Client:  Client{Name: "Nouveau Client"},
		Sections: []Section{
			{ID: NewID(), Title: "Lot Principal"},
		},
		Materials:    []Material{},
		Labor:        Labor{EstimatedDuration: "À calculer"},
		LastModified: time.Now().UnixMilli(),
	}
}

// Clone deep-copies the document so editing operations never alias
// sections or items across document values.
func (d Document) Clone() Document {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		cs := s
		cs.Items = append([]LineItem(nil), s.Items...)
		out.Sections[i] = cs
	}
	out.Materials = append([]Material(nil), d.Materials...)
	out.Labor.Breakdown = append([]LaborLine(nil), d.Labor.Breakdown...)
	return out
}

// Touch stamps the last-modified time. Called on explicit saves only,
// never on keystroke-level edits.
func (d Document) Touch() Document {
	out := d.Clone()
	out.LastModified = time.Now().UnixMilli()
	return out
}

// WithType changes the document type. Converting a quote into an invoice
// rewrites a leading D- number prefix to F-; any other conversion leaves
// the number untouched.
func (d Document) WithType(t Type) Document {
	out := d.Clone()
	out.Type = t
	if t == TypeFacture && strings.HasPrefix(out.Number, "D-") {
		out.Number = "F-" + strings.TrimPrefix(out.Number, "D-")
	}
	return out
}

// Sign records the client signature and moves the document to SIGNED.
// A paid invoice stays paid: status progression is monotonic.
func (d Document) Sign(imageDataURL string) Document {
	out := d.Clone()
	if out.Status == StatusPaid {
		return out
	}
	out.Status = StatusSigned
	out.Signature = imageDataURL
	out.SignatureDate = time.Now().Format("2006-01-02")
	return out
}

// MarkPaid moves an invoice to PAID. Other document types never carry
// that status.
func (d Document) MarkPaid() Document {
	out := d.Clone()
	if out.Type == TypeFacture {
		out.Status = StatusPaid
	}
	return out
}

// AddSection appends an empty section.
func (d Document) AddSection(title string) Document {
	out := d.Clone()
	out.Sections = append(out.Sections, Section{ID: NewID(), Title: title})
	return out
}

// RemoveSection drops a section by id. Unknown ids are ignored.
func (d Document) RemoveSection(sectionID string) Document {
	out := d.Clone()
	kept := out.Sections[:0]
	for _, s := range out.Sections {
		if s.ID != sectionID {
			kept = append(kept, s)
		}
	}
	out.Sections = kept
	return out
}

// AddItem appends a blank line to a section. Manual lines default to the
// standard 21% rate; report lines carry the inert note shape.
func (d Document) AddItem(sectionID string) Document {
	out := d.Clone()
	item := LineItem{ID: NewID(), Qty: 1, Unit: UnitPiece, VAT: 21}
	if out.Type == TypeRapport {
		item = LineItem{ID: NewID(), Qty: 1, Unit: UnitNote}
	}
	for i := range out.Sections {
		if out.Sections[i].ID == sectionID {
			out.Sections[i].Items = append(out.Sections[i].Items, item)
			break
		}
	}
	return out
}

// RemoveItem drops a line from a section. Ids are never reused afterwards.
func (d Document) RemoveItem(sectionID, itemID string) Document {
	out := d.Clone()
	for i := range out.Sections {
		if out.Sections[i].ID != sectionID {
			continue
		}
		kept := out.Sections[i].Items[:0]
		for _, it := range out.Sections[i].Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		out.Sections[i].Items = kept
		break
	}
	return out
}

// UpdateItem applies fn to one line item and returns the new document.
// The rate the mutator leaves behind is clamped to a legal value.
func (d Document) UpdateItem(sectionID, itemID string, fn func(*LineItem)) Document {
	out := d.Clone()
	for i := range out.Sections {
		if out.Sections[i].ID != sectionID {
			continue
		}
		for j := range out.Sections[i].Items {
			if out.Sections[i].Items[j].ID == itemID {
				fn(&out.Sections[i].Items[j])
				out.Sections[i].Items[j].VAT = ClampVAT(out.Sections[i].Items[j].VAT)
				return out
			}
		}
	}
	return out
}

// Sanitize clamps every line item's VAT rate to a legal value and
// returns the new document. Applied to externally supplied documents
// before they are stored.
func (d Document) Sanitize() Document {
	out := d.Clone()
	for i := range out.Sections {
		for j := range out.Sections[i].Items {
			out.Sections[i].Items[j].VAT = ClampVAT(out.Sections[i].Items[j].VAT)
		}
	}
	return out
}

// ClampVAT remaps an arbitrary rate to the nearest legal one. Legal rates
// pass through unchanged; ties resolve to the lower rate.
func ClampVAT(rate float64) float64 {
	best := LegalVATRates[0]
	for _, r := range LegalVATRates {
		if abs(rate-r) < abs(rate-best) {
			best = r
		}
	}
	return best
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
