// Package rates parses foreign-exchange reference-rate documents in the
// ECB daily XML format into a rate table usable by the currency converter.
//
// The package works on payloads the caller already obtained. Fetching is a
// collaborator concern, kept out of this module on purpose.
package rates

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Table is a parsed reference-rate document: each rate is the amount of
// quote currency one unit of the document's base currency buys.
type Table struct {
	Base  string
	Date  string // as found in the document, YYYY-MM-DD
	Rates map[string]decimal.Decimal
}

// Parse reads an ECB-style daily rates document. The expected shape is a
// Cube element carrying a time attribute, holding one Cube child per
// currency with currency and rate attributes.
func Parse(payload []byte, base string) (*Table, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(payload); err != nil {
		return nil, fmt.Errorf("parsing rates document: %w", err)
	}

	t := &Table{Base: base, Rates: make(map[string]decimal.Decimal)}

	if day := doc.FindElement("//Cube[@time]"); day != nil {
		t.Date = day.SelectAttrValue("time", "")
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no currency rates found in document")
	}
	for _, cube := range cubes {
		code := cube.SelectAttrValue("currency", "")
		raw := cube.SelectAttrValue("rate", "")
		rate, err := decimal.NewFromString(raw)
		if err != nil || code == "" {
			continue
		}
		if rate.IsPositive() {
			t.Rates[code] = rate
		}
	}
	return t, nil
}

// Invert rebases the table onto one of its quote currencies. The ECB
// publishes EUR-based rates; a CAD-book dashboard needs CAD-based ones.
// Each resulting rate is the amount of the new base one unit of the
// currency is worth.
func (t *Table) Invert(newBase string) (*Table, error) {
	pivot, ok := t.Rates[newBase]
	if !ok || !pivot.IsPositive() {
		return nil, fmt.Errorf("no rate for %s in %s-based table", newBase, t.Base)
	}
	out := &Table{Base: newBase, Date: t.Date, Rates: make(map[string]decimal.Decimal, len(t.Rates)+1)}
	// one unit of the old base in new-base terms
	out.Rates[t.Base] = pivot
	for code, rate := range t.Rates {
		if code == newBase {
			continue
		}
		// code -> old base -> new base
		out.Rates[code] = pivot.Div(rate)
	}
	return out, nil
}
