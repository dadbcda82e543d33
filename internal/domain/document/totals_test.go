package document

import (
	"math"
	"reflect"
	"testing"
)

func docWithItem(t Type, qty, price, vat float64) Document {
	d := New(t)
	d.Sections[0].Items = []LineItem{{ID: NewID(), Description: "Maçonnerie", Qty: qty, Unit: UnitM2, Price: price, VAT: vat}}
	return d
}

func TestComputeTotalsQuoteScenario(t *testing.T) {
	d := docWithItem(TypeDevis, 2, 100, 21)
	d.Deposit = 45

	got := ComputeTotals(d)
	if got.HT != 200 {
		t.Fatalf("ht = %v, want 200", got.HT)
	}
	if got.VAT != 42 {
		t.Fatalf("vat = %v, want 42", got.VAT)
	}
	if got.TTC != 242 {
		t.Fatalf("ttc = %v, want 242", got.TTC)
	}
	b, ok := got.Bucket(21)
	if !ok || b.Base != 200 || b.Tax != 42 {
		t.Fatalf("bucket 21 = %+v ok=%v, want base=200 tax=42", b, ok)
	}
	if math.Abs(got.DepositAmount-108.9) > 1e-9 {
		t.Fatalf("depositAmount = %v, want 108.9", got.DepositAmount)
	}
	// A quote's net stays the full TTC; the deposit is informational.
	if got.NetToPay != 242 {
		t.Fatalf("netToPay = %v, want 242", got.NetToPay)
	}
}

func TestComputeTotalsInvoiceSubtractsDeposit(t *testing.T) {
	d := docWithItem(TypeFacture, 2, 100, 21)
	d.Deposit = 45

	got := ComputeTotals(d)
	if math.Abs(got.DepositAmount-108.9) > 1e-9 {
		t.Fatalf("depositAmount = %v, want 108.9", got.DepositAmount)
	}
	if math.Abs(got.NetToPay-(242-108.9)) > 1e-9 {
		t.Fatalf("netToPay = %v, want %v", got.NetToPay, 242-108.9)
	}
}

func TestComputeTotalsCreditNoteIsNegative(t *testing.T) {
	d := docWithItem(TypeNoteCredit, 2, 100, 21)

	got := ComputeTotals(d)
	if got.HT != -200 || got.VAT != -42 || got.TTC != -242 {
		t.Fatalf("ht/vat/ttc = %v/%v/%v, want -200/-42/-242", got.HT, got.VAT, got.TTC)
	}
	b, ok := got.Bucket(21)
	if !ok || b.Base != -200 || b.Tax != -42 {
		t.Fatalf("bucket 21 = %+v, want base=-200 tax=-42", b)
	}
}

func TestComputeTotalsCreditNoteNegatesAbsoluteValue(t *testing.T) {
	// Even a negative stored magnitude must come out negative: the policy
	// is negate-the-absolute-value, not a plain sign flip.
	d := docWithItem(TypeNoteCredit, 2, -100, 21)

	got := ComputeTotals(d)
	if got.HT != -200 || got.VAT != -42 {
		t.Fatalf("ht/vat = %v/%v, want -200/-42", got.HT, got.VAT)
	}
	b, _ := got.Bucket(21)
	if b.Base > 0 || b.Tax > 0 {
		t.Fatalf("bucket 21 = %+v, want non-positive base and tax", b)
	}
}

func TestComputeTotalsEmptySections(t *testing.T) {
	d := New(TypeDevis)
	got := ComputeTotals(d)
	if got.HT != 0 || got.VAT != 0 || got.TTC != 0 || got.NetToPay != 0 || got.DepositAmount != 0 {
		t.Fatalf("totals not zero: %+v", got)
	}
	if len(got.Breakdown) != 0 {
		t.Fatalf("breakdown not empty: %+v", got.Breakdown)
	}
}

func TestComputeTotalsTTCIsSumExactly(t *testing.T) {
	d := New(TypeFacture)
	d.Sections[0].Items = []LineItem{
		{ID: NewID(), Qty: 3, Price: 19.99, VAT: 6},
		{ID: NewID(), Qty: 1.5, Price: 42.5, VAT: 21},
		{ID: NewID(), Qty: 7, Price: 0.13, VAT: 0},
	}
	got := ComputeTotals(d)
	if got.TTC != got.HT+got.VAT {
		t.Fatalf("ttc = %v, want ht+vat = %v", got.TTC, got.HT+got.VAT)
	}
}

func TestComputeTotalsBucketOrderIsFirstAppearance(t *testing.T) {
	d := New(TypeDevis)
	d.Sections[0].Items = []LineItem{
		{ID: NewID(), Qty: 1, Price: 10, VAT: 21},
		{ID: NewID(), Qty: 1, Price: 10, VAT: 6},
		{ID: NewID(), Qty: 1, Price: 10, VAT: 21},
		{ID: NewID(), Qty: 1, Price: 10, VAT: 12},
	}
	got := ComputeTotals(d)
	var order []float64
	for _, b := range got.Breakdown {
		order = append(order, b.Rate)
	}
	if want := []float64{21, 6, 12}; !reflect.DeepEqual(order, want) {
		t.Fatalf("bucket order = %v, want %v", order, want)
	}
}

func TestComputeTotalsOutOfSetRateParticipatesLiterally(t *testing.T) {
	// Rate legality is the normalizer's responsibility; the engine uses
	// whatever rate is stored.
	d := docWithItem(TypeDevis, 1, 100, 19)
	got := ComputeTotals(d)
	if got.VAT != 19 {
		t.Fatalf("vat = %v, want 19", got.VAT)
	}
	if _, ok := got.Bucket(19); !ok {
		t.Fatalf("expected a 19%% bucket, got %+v", got.Breakdown)
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	d := docWithItem(TypeFacture, 2.5, 99.95, 12)
	d.Deposit = 30
	first := ComputeTotals(d)
	second := ComputeTotals(d)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("totals differ between calls:\n%+v\n%+v", first, second)
	}
}

func TestComputeTotalsReportRunsSameLoop(t *testing.T) {
	d := New(TypeRapport)
	d.Sections[0].Items = []LineItem{{ID: NewID(), Description: "Fissure relevée", Qty: 1, Unit: UnitNote}}
	got := ComputeTotals(d)
	if got.TTC != 0 {
		t.Fatalf("report ttc = %v, want 0", got.TTC)
	}
}
