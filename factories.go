package sheetpulse

import (
	"sort"
	"strings"
)

// Record factories. Each Parse function is a pure transformation from one
// tab's raw delimited text to a slice of typed records. The shared contract:
// resolve the header, map columns to semantic fields, then run every data
// row through a per-type constructor that returns (record, ok). A row is
// rejected when its resolved identity field AND its primary value field are
// both still at their defaults, the heuristic for "this row carries no
// real data".
//
// Column indices that failed to resolve are -1; cellAt turns those into ""
// and the constructor substitutes a type-specific default.

// ParseAssets parses the generic assets tab.
func ParseAssets(raw string) []Asset {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, assetKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	nameCol := ResolveColumn(headers, "name", "asset", "description", "item")
	typeCol := ResolveColumn(headers, "type", "category", "class")
	valueCol := ResolveColumn(headers, "value", "amount", "balance", "worth")
	curCol := ResolveColumn(headers, "currency", "ccy")
	updatedCol := ResolveColumn(headers, "updated", "last updated", "date", "as of")

	var out []Asset
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		name := cellAt(row, nameCol)
		if name == "" {
			name = UnknownAsset
		}
		value := ParseMoney(cellAt(row, valueCol), cellAt(row, curCol))
		if name == UnknownAsset && value.IsZero() {
			Log.Debug().Int("row", i).Msg("asset row rejected, no identity and no value")
			continue
		}
		declared := cellAt(row, typeCol)
		a := Asset{
			Name:  name,
			Type:  declared,
			Class: ClassifyAsset(name, declared),
			Value: value,
			Row:   i,
		}
		if d, ok := ParseFlexibleDate(cellAt(row, updatedCol)); ok {
			a.Updated = d
		}
		out = append(out, a)
	}
	return out
}

// ParseHoldings parses the investments tab into sheet-declared holdings.
func ParseHoldings(raw string) []Holding {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, holdingKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	tickerCol := ResolveColumn(headers, "ticker", "symbol")
	nameCol := ResolveColumn(headers, "name", "description", "security")
	qtyCol := ResolveColumn(headers, "quantity", "qty", "shares", "units")
	costCol := ResolveColumn(headers, "avg cost", "cost basis", "cost", "book")
	priceCol := ResolveColumn(headers, "price", "last price", "quote")
	valueCol := ResolveColumn(headers, "market value", "value")
	accountCol := ResolveColumn(headers, "account", "wallet")
	classCol := ResolveColumn(headers, "asset class", "class", "type")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []Holding
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		rawTicker := cellAt(row, tickerCol)
		ticker := NormalizeTicker(rawTicker)
		qty := Q(ParseNumber(cellAt(row, qtyCol)))
		if ticker == UnknownTicker && qty.IsZero() {
			continue
		}
		currency := cellAt(row, curCol)
		name := cellAt(row, nameCol)
		if name == "" {
			name = rawTicker
		}
		account := cellAt(row, accountCol)
		if account == "" {
			account = UnknownAccount
		}
		out = append(out, Holding{
			Ticker:      ticker,
			Name:        name,
			Quantity:    qty,
			AvgCost:     ParseMoney(cellAt(row, costCol), currency),
			Price:       ParseMoney(cellAt(row, priceCol), currency),
			MarketValue: ParseMoney(cellAt(row, valueCol), currency),
			Account:     account,
			Class:       cellAt(row, classCol),
			Row:         i,
		})
	}
	return out
}

// ParseTrades parses the trade-history tab. Settlement total and unit price
// are not independently trusted: when one is zero it is derived from the
// other, so at least one must be reliable.
func ParseTrades(raw string) []Trade {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, tradeKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	dateCol := ResolveColumn(headers, "date", "trade date", "executed")
	tickerCol := ResolveColumn(headers, "ticker", "symbol", "security")
	sideCol := ResolveColumn(headers, "side", "action", "type", "direction")
	qtyCol := ResolveColumn(headers, "quantity", "qty", "shares", "units")
	priceCol := ResolveColumn(headers, "price", "unit price")
	totalCol := ResolveColumn(headers, "total", "amount", "settlement")
	feeCol := ResolveColumn(headers, "fee", "commission")
	marketCol := ResolveColumn(headers, "market price", "market")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []Trade
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		ticker := NormalizeTicker(cellAt(row, tickerCol))
		qty := Q(ParseNumber(cellAt(row, qtyCol))).Abs()
		if ticker == UnknownTicker && qty.IsZero() {
			continue
		}
		currency := cellAt(row, curCol)
		price := ParseMoney(cellAt(row, priceCol), currency)
		total := ParseMoney(cellAt(row, totalCol), currency)
		if total.IsZero() && !qty.IsZero() && !price.IsZero() {
			total = price.Mul(qty)
		} else if price.IsZero() && !qty.IsZero() && !total.IsZero() {
			price = total.Div(qty)
		} else if qty.IsZero() && !price.IsZero() && !total.IsZero() {
			qty = total.DivPrice(price).Abs()
		}

		side := Buy
		if strings.Contains(strings.ToLower(cellAt(row, sideCol)), "sell") {
			side = Sell
		}

		t := Trade{
			Ticker:      ticker,
			Side:        side,
			Quantity:    qty,
			Price:       price,
			Total:       total.Abs(),
			Fee:         ParseMoney(cellAt(row, feeCol), currency),
			MarketPrice: ParseMoney(cellAt(row, marketCol), currency),
			Row:         i,
		}
		if d, ok := ParseFlexibleDate(cellAt(row, dateCol)); ok {
			t.Date = d
		}
		out = append(out, t)
	}
	return out
}

// ParseSubscriptions parses the subscriptions tab.
func ParseSubscriptions(raw string) []Subscription {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, subscriptionKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	nameCol := ResolveColumn(headers, "name", "subscription", "service")
	amountCol := ResolveColumn(headers, "amount", "cost", "price")
	cadenceCol := ResolveColumn(headers, "frequency", "cadence", "billing", "cycle")
	renewalCol := ResolveColumn(headers, "renewal", "next", "due")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []Subscription
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		name := cellAt(row, nameCol)
		amount := ParseMoney(cellAt(row, amountCol), cellAt(row, curCol))
		if name == "" && amount.IsZero() {
			continue
		}
		s := Subscription{Name: name, Amount: amount, Cadence: cellAt(row, cadenceCol), Row: i}
		if d, ok := ParseFlexibleDate(cellAt(row, renewalCol)); ok {
			s.Renewal = d
		}
		out = append(out, s)
	}
	return out
}

// ParseAccounts parses the bank accounts tab.
func ParseAccounts(raw string) []BankAccount {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, accountKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	nameCol := ResolveColumn(headers, "account", "name", "institution", "bank")
	kindCol := ResolveColumn(headers, "type", "kind")
	balanceCol := ResolveColumn(headers, "balance", "amount", "value")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []BankAccount
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		name := cellAt(row, nameCol)
		balance := ParseMoney(cellAt(row, balanceCol), cellAt(row, curCol))
		if name == "" && balance.IsZero() {
			continue
		}
		out = append(out, BankAccount{Name: name, Kind: cellAt(row, kindCol), Balance: balance, Row: i})
	}
	return out
}

// ParseNetWorthLog parses the net-worth log tab into a chronological series.
func ParseNetWorthLog(raw string) []NetWorthEntry {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, netWorthKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	dateCol := ResolveColumn(headers, "date", "month", "when")
	valueCol := ResolveColumn(headers, "net worth", "total", "value", "amount")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []NetWorthEntry
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		d, ok := ParseFlexibleDate(cellAt(row, dateCol))
		cell := cellAt(row, valueCol)
		value := ParseMoney(cell, cellAt(row, curCol))
		if !ok || (value.IsZero() && !strings.ContainsAny(cell, "0123456789")) {
			// A log point needs a date and a numeric value. An explicit
			// zero is a genuine point; a blank or decorative cell is not.
			continue
		}
		out = append(out, NetWorthEntry{Date: d, Value: value})
	}
	sortNetWorth(out)
	return out
}

// ParseDebts parses the debts tab.
func ParseDebts(raw string) []DebtEntry {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, debtKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	nameCol := ResolveColumn(headers, "name", "debt", "loan", "description")
	balanceCol := ResolveColumn(headers, "balance", "owed", "amount")
	rateCol := ResolveColumn(headers, "rate", "interest", "apr")
	paymentCol := ResolveColumn(headers, "payment", "monthly")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []DebtEntry
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		name := cellAt(row, nameCol)
		balance := ParseMoney(cellAt(row, balanceCol), cellAt(row, curCol))
		if name == "" && balance.IsZero() {
			continue
		}
		out = append(out, DebtEntry{
			Name:    name,
			Balance: balance,
			Rate:    Percent(ParseNumber(cellAt(row, rateCol)).InexactFloat64()),
			Payment: ParseMoney(cellAt(row, paymentCol), cellAt(row, curCol)),
			Row:     i,
		})
	}
	return out
}

// ParseTaxes parses the tax summary tab.
func ParseTaxes(raw string) []TaxRecord {
	rows := SplitRows(raw)
	h := ScoreHeaderRow(rows, taxKeywords, flatHeaderScan)
	if h < 0 {
		return nil
	}
	headers := rows[h]
	yearCol := ResolveColumn(headers, "year")
	incomeCol := ResolveColumn(headers, "income", "gross")
	paidCol := ResolveColumn(headers, "paid", "withheld")
	owedCol := ResolveColumn(headers, "owed", "refund", "balance")
	curCol := ResolveColumn(headers, "currency", "ccy")

	var out []TaxRecord
	for i := h + 1; i < len(rows); i++ {
		row := rows[i]
		year := int(ParseNumber(cellAt(row, yearCol)).IntPart())
		income := ParseMoney(cellAt(row, incomeCol), cellAt(row, curCol))
		if year == 0 && income.IsZero() {
			continue
		}
		out = append(out, TaxRecord{
			Year:   year,
			Income: income,
			Paid:   ParseMoney(cellAt(row, paidCol), cellAt(row, curCol)),
			Owed:   ParseMoney(cellAt(row, owedCol), cellAt(row, curCol)),
			Row:    i,
		})
	}
	return out
}

// sortNetWorth orders the net-worth log chronologically in place. The sort
// is stable, entries on the same day keep their sheet order.
func sortNetWorth(entries []NetWorthEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
