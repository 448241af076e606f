package sheetpulse

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Attribution decomposes a window's net-worth movement into what the
// owner put in, what they took out, and what the market did.
type Attribution struct {
	Start         Money
	End           Money
	Contributions Money
	Withdrawals   Money
	MarketGain    Money
	Return        Percent
}

// seriesBounds finds the first and last entry of the series within the
// window. The series must be sorted by date ascending, which
// ParseNetWorthLog guarantees.
func seriesBounds(series []NetWorthEntry, window Range) (start, end NetWorthEntry, ok bool) {
	for _, e := range series {
		if !window.Contains(e.Date) {
			continue
		}
		if !ok {
			start, ok = e, true
		}
		end = e
	}
	return start, end, ok
}

// PortfolioAttribution explains the window's net-worth change. Buys
// inside the window count as contributions, sells as withdrawals, and the
// residual move is attributed to the market:
//
//	market = end - start - (contributions - withdrawals)
//
// The return is Simple Dietz, weighting net flow at mid-period. When the
// denominator is near zero (fresh portfolio, flows cancel the start) the
// start value alone is used; a still-degenerate denominator yields a zero
// return rather than a meaningless figure.
//
// Every figure is expressed in the converter's base currency. Trade totals
// and series points in other currencies are converted before accumulating,
// so a trades tab quoted in a foreign currency decomposes cleanly instead
// of colliding with the series' currency.
func PortfolioAttribution(series []NetWorthEntry, trades []Trade, window Range, fx Converter) Attribution {
	if fx.Base == "" {
		fx = NewConverter("", fx.Rates)
	}
	start, end, ok := seriesBounds(series, window)
	a := Attribution{
		Contributions: M(0, fx.Base),
		Withdrawals:   M(0, fx.Base),
	}
	if !ok {
		a.Start = M(0, fx.Base)
		a.End = M(0, fx.Base)
		a.MarketGain = M(0, fx.Base)
		return a
	}
	a.Start, a.End = fx.Convert(start.Value), fx.Convert(end.Value)

	for _, t := range trades {
		if !window.Contains(t.Date) {
			continue
		}
		switch t.Side {
		case Buy:
			a.Contributions = a.Contributions.Add(fx.Convert(t.Total))
		case Sell:
			a.Withdrawals = a.Withdrawals.Add(fx.Convert(t.Total))
		}
	}

	netFlow := a.Contributions.Sub(a.Withdrawals)
	a.MarketGain = a.End.Sub(a.Start).Sub(netFlow)

	denom := a.Start.Add(netFlow.Half())
	if denom.Abs().AsFloat() < 0.01 {
		denom = a.Start
	}
	if !denom.IsZero() {
		r := a.MarketGain.AsFloat() / denom.AsFloat() * 100
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			a.Return = Percent(r)
		}
	}
	return a
}

// MaxDrawdown returns the largest peak-to-trough decline over the series
// as a negative percentage, and the date the trough was hit. A series
// that never declines reports zero.
func MaxDrawdown(series []NetWorthEntry) (Percent, Date) {
	var worst float64
	var at Date
	var peak float64
	for i, e := range series {
		v := e.Value.AsFloat()
		if i == 0 || v > peak {
			peak = v
			continue
		}
		if peak <= 0 {
			continue
		}
		dd := (v - peak) / peak * 100
		if dd < worst {
			worst = dd
			at = e.Date
		}
	}
	return Percent(worst), at
}

// NetWorthVelocity is the average daily net-worth change across the
// window, the figure the dashboard projects forward. Fewer than two
// in-window points yield zero.
func NetWorthVelocity(series []NetWorthEntry, window Range) Money {
	start, end, ok := seriesBounds(series, window)
	if !ok || start.Date == end.Date {
		return M(0, DefaultCurrency)
	}
	days := DaysBetween(start.Date, end.Date) - 1
	if days <= 0 {
		return M(0, DefaultCurrency)
	}
	delta := end.Value.Amount().Sub(start.Value.Amount())
	return M(delta.Div(newDecimal(days)), DefaultCurrency)
}

// TopMovers ranks holdings by absolute unrealized gain against average
// cost, largest move first, truncated to limit. Holdings with no cost
// basis are skipped.
func TopMovers(holdings []Holding, quotes map[string]decimal.Decimal, limit int) []DimensionTotal {
	var out []DimensionTotal
	for _, h := range holdings {
		if h.AvgCost.IsZero() || h.Quantity.IsNegligible() {
			continue
		}
		// raw amounts: a manual market-value override may carry a different
		// currency than the cost basis, and the ranking must not crash on it
		value := HoldingValue(h, quotes)
		cost := h.AvgCost.Mul(h.Quantity)
		gain := M(value.Amount().Sub(cost.Amount()), value.Currency())
		out = append(out, DimensionTotal{Name: h.Ticker, Total: gain, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Abs().GreaterThan(out[j].Total.Abs())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
