package sheetpulse

import "github.com/shopspring/decimal"

// Converter converts monetary amounts into a single base currency using a
// static rate table. Rates map a foreign currency code to the amount of
// base currency one unit of it is worth.
type Converter struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// NewConverter returns a converter into base. A nil rate table is valid
// and converts nothing but same-currency amounts.
func NewConverter(base string, rates map[string]decimal.Decimal) Converter {
	if base == "" {
		base = DefaultCurrency
	}
	return Converter{Base: base, Rates: rates}
}

// Convert returns m expressed in the converter's base currency. Amounts
// already in base, or in a currency with no known rate, keep their value
// unchanged. A missing rate is logged, not an error: a partially converted
// total beats no total at all.
func (c Converter) Convert(m Money) Money {
	if m.Currency() == c.Base || m.Currency() == "" {
		return M(m.Amount(), c.Base)
	}
	rate, ok := c.Rates[m.Currency()]
	if !ok || !rate.IsPositive() {
		Log.Debug().Str("currency", m.Currency()).Msg("no conversion rate, amount kept as-is")
		return M(m.Amount(), c.Base)
	}
	return M(m.Amount().Mul(rate), c.Base)
}
