package document

import "math"

// RateBucket aggregates the taxable base and tax amount for one VAT rate.
type RateBucket struct {
	Rate float64 `json:"rate"`
	Base float64 `json:"base"`
	Tax  float64 `json:"tax"`
}

// Totals are derived figures. They are recomputed from the document on
// every read and never stored, so an edit can never leave them stale.
type Totals struct {
	HT            float64      `json:"ht"`
	VAT           float64      `json:"vat"`
	TTC           float64      `json:"ttc"`
	Breakdown     []RateBucket `json:"breakdown"`
	DepositAmount float64      `json:"depositAmount"`
	NetToPay      float64      `json:"netToPay"`
}

// Bucket returns the breakdown entry for a rate.
func (t Totals) Bucket(rate float64) (RateBucket, bool) {
	for _, b := range t.Breakdown {
		if b.Rate == rate {
			return b, true
		}
	}
	return RateBucket{}, false
}

// ComputeTotals walks every line of every section and accumulates HT, VAT
// and the per-rate breakdown. Buckets keep the order in which a rate first
// appears in the document, which is also the print order.
//
// Credit notes are negated by taking the negative absolute value of each
// figure rather than flipping the sign, so the result is negative even if
// a negative magnitude sneaked into the stored data.
//
// Pure and O(number of line items); safe to call on every render. Report
// documents run the same loop but their totals carry no meaning and are
// suppressed by callers.
func ComputeTotals(d Document) Totals {
	var t Totals
	idx := map[float64]int{}
	for _, s := range d.Sections {
		for _, it := range s.Items {
			qty := finite(it.Qty)
			price := finite(it.Price)
			rate := it.VAT
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				rate = 21
			}
			lineHT := qty * price
			lineVAT := lineHT * (rate / 100)
			t.HT += lineHT
			t.VAT += lineVAT
			i, ok := idx[rate]
			if !ok {
				i = len(t.Breakdown)
				idx[rate] = i
				t.Breakdown = append(t.Breakdown, RateBucket{Rate: rate})
			}
			t.Breakdown[i].Base += lineHT
			t.Breakdown[i].Tax += lineVAT
		}
	}

	if d.Type == TypeNoteCredit {
		t.HT = -math.Abs(t.HT)
		t.VAT = -math.Abs(t.VAT)
		for i := range t.Breakdown {
			t.Breakdown[i].Base = -math.Abs(t.Breakdown[i].Base)
			t.Breakdown[i].Tax = -math.Abs(t.Breakdown[i].Tax)
		}
	}

	t.TTC = t.HT + t.VAT
	if d.Deposit != 0 {
		t.DepositAmount = t.TTC * (finite(d.Deposit) / 100)
	}
	// A quote's deposit is informational: the displayed net stays the full
	// TTC. Invoices and credit notes subtract it.
	if d.Type == TypeDevis {
		t.NetToPay = t.TTC
	} else {
		t.NetToPay = t.TTC - t.DepositAmount
	}
	return t
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
