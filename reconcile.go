package sheetpulse

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Portfolio reconciliation: merge sheet-declared holdings with positions
// implied by trade history and cash implied by account-classified assets,
// and settle quantity disagreements between the two sources.

// CryptoWalletAccount is the account label assigned to holdings
// synthesized from trades in known cryptocurrency tickers.
const CryptoWalletAccount = "Crypto Wallet"

// tradeStats accumulates per-ticker figures from trade history.
type tradeStats struct {
	net      Quantity // net signed quantity, buys minus sells
	buyQty   Quantity
	buyCost  Money
	lastSeen Trade // most recent trade for this ticker
}

// sumTradeTotals adds a trade total into an accumulator without insisting
// on a single currency. Trades in one ticker normally share the listing
// currency, but a stray row must degrade to a rough cost basis rather than
// crash the whole view: mismatched totals are summed raw and the first
// currency seen wins.
func sumTradeTotals(acc, total Money) Money {
	if acc.Currency() != "" && total.Currency() != "" && acc.Currency() != total.Currency() {
		Log.Debug().Str("have", acc.Currency()).Str("got", total.Currency()).
			Msg("mixed trade currencies, summing raw amounts")
		return M(acc.Amount().Add(total.Amount()), acc.Currency())
	}
	return acc.Add(total)
}

// tradeStatsByTicker folds the trade history into per-ticker stats.
func tradeStatsByTicker(trades []Trade) map[string]*tradeStats {
	stats := make(map[string]*tradeStats)
	for _, t := range trades {
		s, ok := stats[t.Ticker]
		if !ok {
			s = &tradeStats{}
			stats[t.Ticker] = s
		}
		switch t.Side {
		case Buy:
			s.net = s.net.Add(t.Quantity)
			s.buyQty = s.buyQty.Add(t.Quantity)
			s.buyCost = sumTradeTotals(s.buyCost, t.Total)
		case Sell:
			s.net = s.net.Sub(t.Quantity)
		}
		// on equal dates the later sheet row wins
		if s.lastSeen.Ticker == "" || !t.Date.Before(s.lastSeen.Date) {
			s.lastSeen = t
		}
	}
	return stats
}

// MergeHoldings produces the unified holdings view: all sheet-declared
// holdings, plus a synthetic holding for every ticker that appears in
// trade history but not in the sheet, plus synthetic cash lines for
// registered-account assets.
func MergeHoldings(declared []Holding, trades []Trade, assets []Asset) []Holding {
	out := make([]Holding, 0, len(declared))
	seen := make(map[string]bool)
	for _, h := range declared {
		out = append(out, h)
		seen[h.Ticker] = true
	}

	stats := tradeStatsByTicker(trades)
	tickers := make([]string, 0, len(stats))
	for t := range stats {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		if seen[ticker] || ticker == UnknownTicker {
			continue
		}
		s := stats[ticker]
		if s.net.IsNegligible() {
			continue
		}
		h := Holding{
			Ticker:    ticker,
			Name:      ticker,
			Quantity:  s.net,
			Account:   UnknownAccount,
			Synthetic: true,
			Row:       -1,
		}
		if !s.buyQty.IsZero() {
			h.AvgCost = s.buyCost.Div(s.buyQty)
		}
		// current price from the most recent trade's observed market price,
		// its own price as fallback.
		h.Price = s.lastSeen.MarketPrice
		if h.Price.IsZero() {
			h.Price = s.lastSeen.Price
		}
		if IsCryptoTicker(ticker) {
			h.Account = CryptoWalletAccount
		}
		out = append(out, h)
	}

	return injectCashBalances(out, assets)
}

// injectCashBalances scans generic assets for registered-account labels
// (TFSA/FHSA/RRSP/RESP/LIRA) and injects a synthetic cash holding into
// that account. No injection happens when the account already has real
// holdings and the asset is not explicitly a cash/uninvested line, which
// would double-count the account's total once detailed holdings exist.
func injectCashBalances(holdings []Holding, assets []Asset) []Holding {
	populated := make(map[string]bool)
	for _, h := range holdings {
		if !h.Quantity.IsNegligible() {
			populated[normalizeKey(h.Account)] = true
		}
	}

	out := holdings
	for _, a := range assets {
		label := registeredAccountOf(a)
		if label == "" || a.Value.IsZero() {
			continue
		}
		if populated[normalizeKey(label)] && !isExplicitCashLine(a) {
			continue
		}
		out = append(out, Holding{
			Ticker:      "CASH",
			Name:        a.Name,
			Quantity:    Q(1),
			Price:       a.Value,
			MarketValue: a.Value,
			Account:     label,
			Class:       "Cash",
			Synthetic:   true,
			Row:         a.Row,
		})
	}
	return out
}

// quantityScale is the rounding precision used when rescaling lots.
const quantityScale = 8

// ReconcileQuantities settles disagreements between sheet-declared lot
// quantities and the trade-implied net quantity per ticker. When they
// differ, every sheet lot is rescaled proportionally and the rounding
// remainder is assigned to the last lot, so the reconciled lots sum to
// exactly the trade-implied quantity.
//
// Tickers without trade history, and synthetic lots, pass through
// untouched.
func ReconcileQuantities(holdings []Holding, trades []Trade) []Holding {
	stats := tradeStatsByTicker(trades)

	// index sheet lots per ticker, preserving order
	lotIdx := make(map[string][]int)
	for i, h := range holdings {
		if h.Synthetic {
			continue
		}
		lotIdx[h.Ticker] = append(lotIdx[h.Ticker], i)
	}

	out := make([]Holding, len(holdings))
	copy(out, holdings)

	for ticker, idxs := range lotIdx {
		s, ok := stats[ticker]
		if !ok {
			continue
		}
		declared := Q(0)
		for _, i := range idxs {
			declared = declared.Add(out[i].Quantity)
		}
		if declared.Sub(s.net).IsNegligible() || declared.IsZero() {
			continue
		}

		factor := s.net.Div(declared)
		assigned := Q(0)
		for n, i := range idxs {
			if n == len(idxs)-1 {
				// the last lot absorbs the rounding remainder so the sum is
				// exact, not merely close
				out[i].Quantity = s.net.Sub(assigned)
				break
			}
			scaled := Quantity{value: out[i].Quantity.Mul(factor).value.Round(quantityScale)}
			out[i].Quantity = scaled
			assigned = assigned.Add(scaled)
		}
		Log.Debug().Str("ticker", ticker).
			Str("declared", declared.String()).
			Str("implied", s.net.String()).
			Msg("lot quantities rescaled to trade-implied total")
	}
	return out
}

// HoldingValue computes the market value of a holding. A negligible
// quantity is worth nothing; a live quote beats everything; a positive
// manual market-value override beats the sheet price; otherwise quantity
// times sheet price.
func HoldingValue(h Holding, quotes map[string]decimal.Decimal) Money {
	if h.Quantity.IsNegligible() {
		return M(0, h.Price.Currency())
	}
	if live, ok := quotes[h.Ticker]; ok && live.IsPositive() {
		return M(live, h.Price.Currency()).Mul(h.Quantity)
	}
	if h.MarketValue.IsPositive() {
		return h.MarketValue
	}
	return h.Price.Mul(h.Quantity)
}

// PortfolioValue sums the values of all holdings, converting each into the
// converter's base currency.
func PortfolioValue(holdings []Holding, quotes map[string]decimal.Decimal, fx Converter) Money {
	total := M(0, fx.Base)
	for _, h := range holdings {
		total = total.Add(fx.Convert(HoldingValue(h, quotes)))
	}
	return total
}
