// Package branding holds the company identity printed on documents.
package branding

import (
	"fmt"
	"strings"
)

type Branding struct {
	Color       string `json:"color"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	VAT         string `json:"vat"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	IBAN        string `json:"iban"`
	LogoURL     string `json:"logoUrl"`
}

// Default is the identity used until the company customizes it.
func Default() Branding {
	return Branding{
		Color:       "#5cbd38",
		CompanyName: "BM BAT",
		Address:     "Rue de l'Artisanat 12, 1000 Bruxelles",
		VAT:         "BE 0000.000.000",
		Phone:       "+32 400 00 00 00",
		Email:       "info@entreprise.be",
		IBAN:        "BE00 0000 0000 0000",
	}
}

// EPCPayload builds the EPC069-12 quick-response transfer string banks
// scan to prefill a SEPA credit transfer.
func (b Branding) EPCPayload(amount float64, reference string) string {
	iban := strings.ReplaceAll(b.IBAN, " ", "")
	lines := []string{
		"BCD",
		"002",
		"1",
		"SCT",
		"",
		b.CompanyName,
		iban,
		fmt.Sprintf("EUR%.2f", amount),
		"",
		"",
		reference,
		"",
	}
	return strings.Join(lines, "\n")
}

// CanReceivePayment reports whether the identity carries a usable IBAN.
func (b Branding) CanReceivePayment() bool {
	return len(strings.ReplaceAll(b.IBAN, " ", "")) > 5
}
