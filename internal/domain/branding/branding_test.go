package branding

import (
	"strings"
	"testing"
)

func TestEPCPayload(t *testing.T) {
	b := Branding{CompanyName: "BM BAT", IBAN: "BE68 5390 0754 7034"}
	payload := b.EPCPayload(1210.5, "F-2026-042")

	lines := strings.Split(payload, "\n")
	want := []string{"BCD", "002", "1", "SCT", "", "BM BAT", "BE68539007547034", "EUR1210.50", "", "", "F-2026-042", ""}
	if len(lines) != len(want) {
		t.Fatalf("payload has %d lines, want %d:\n%q", len(lines), len(want), payload)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestCanReceivePayment(t *testing.T) {
	if (Branding{IBAN: "BE 1"}).CanReceivePayment() {
		t.Fatalf("short iban accepted")
	}
	if !(Branding{IBAN: "BE68 5390 0754 7034"}).CanReceivePayment() {
		t.Fatalf("valid-length iban rejected")
	}
}

func TestDefaultIdentity(t *testing.T) {
	b := Default()
	if b.CompanyName != "BM BAT" || b.Color != "#5cbd38" {
		t.Fatalf("defaults = %+v", b)
	}
}
