package sheetpulse

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Temporal and dimensional aggregation over normalized transactions.

// DimensionTotal is one slice of a breakdown: a label, its total amount,
// and how many transactions contributed to it.
type DimensionTotal struct {
	Name  string
	Total Money
	Count int
}

// AggregateDimensions breaks the timeline down along a drill path, keeping
// only transactions with the given direction and a date inside the window.
//
// An empty path groups by category. A single-element path groups the
// subcategories of that category. Deeper paths address levels the ledger
// does not have and return an empty breakdown rather than guessing.
// Results come back sorted by total, largest first.
func AggregateDimensions(timeline []NormalizedTransaction, path []string, dir Direction, window Range) []DimensionTotal {
	if len(path) > 1 {
		return nil
	}

	totals := NewLabelMap()
	for _, tx := range timeline {
		if tx.Direction != dir || !window.Contains(tx.Date) {
			continue
		}
		label := tx.Category
		if len(path) == 1 {
			if !strings.EqualFold(tx.Category, path[0]) {
				continue
			}
			label = tx.Subcategory
		}
		if label == "" {
			label = "Other"
		}
		totals.Add(label, tx.Amount.Amount())
	}

	out := make([]DimensionTotal, 0, totals.Len())
	for name, total := range totals.All() {
		out = append(out, DimensionTotal{
			Name:  name,
			Total: M(total, DefaultCurrency),
			Count: totals.Count(name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// VarianceRow compares one label's total across the current window and
// its shadow.
type VarianceRow struct {
	Name     string
	Current  Money
	Previous Money
	Delta    Money
	Pct      Percent
}

// fixedCategory is excluded from variance when the caller asks for
// discretionary-only movement. Fixed costs move rarely and drown the
// interesting rows.
const fixedCategory = "fixed"

// TemporalVariance compares category totals between the current window and
// its shadow. Labels present in either window appear; a label with no
// prior-window activity reports a 100% change. Rows come back sorted by
// absolute delta, largest movement first.
func TemporalVariance(timeline []NormalizedTransaction, dir Direction, current, shadow Range, excludeFixed bool) []VarianceRow {
	cur := AggregateDimensions(timeline, nil, dir, current)
	prev := AggregateDimensions(timeline, nil, dir, shadow)

	prevByName := make(map[string]Money, len(prev))
	for _, d := range prev {
		prevByName[d.Name] = d.Total
	}
	seen := make(map[string]bool, len(cur))

	var out []VarianceRow
	for _, d := range cur {
		seen[d.Name] = true
		p := prevByName[d.Name]
		out = append(out, varianceRow(d.Name, d.Total, p))
	}
	for _, d := range prev {
		if seen[d.Name] {
			continue
		}
		out = append(out, varianceRow(d.Name, M(0, DefaultCurrency), d.Total))
	}

	if excludeFixed {
		kept := out[:0]
		for _, r := range out {
			if strings.EqualFold(r.Name, fixedCategory) {
				continue
			}
			kept = append(kept, r)
		}
		out = kept
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Delta.Abs().GreaterThan(out[j].Delta.Abs())
	})
	return out
}

func varianceRow(name string, current, previous Money) VarianceRow {
	delta := current.Sub(previous)
	pct := Percent(100)
	if !previous.IsZero() {
		pct = Percent(delta.Amount().Div(previous.Amount().Abs()).InexactFloat64() * 100)
	}
	return VarianceRow{Name: name, Current: current, Previous: previous, Delta: delta, Pct: pct}
}

// MonthlyTotals sums the timeline per calendar month for one direction,
// in chronological order.
func MonthlyTotals(timeline []NormalizedTransaction, dir Direction) []DimensionTotal {
	totals := NewLabelMap()
	var months []Date
	seen := make(map[Date]bool)
	for _, tx := range timeline {
		if tx.Direction != dir {
			continue
		}
		m := tx.Date.StartOfMonth()
		totals.Add(m.Format("Jan 2006"), tx.Amount.Amount())
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	out := make([]DimensionTotal, 0, len(months))
	for _, m := range months {
		label := m.Format("Jan 2006")
		total, _ := totals.Get(label)
		out = append(out, DimensionTotal{Name: label, Total: M(total, DefaultCurrency), Count: totals.Count(label)})
	}
	return out
}

// SavingsRate returns (income - expenses) / income for the window as a
// percentage. No income in the window yields zero.
func SavingsRate(timeline []NormalizedTransaction, window Range) Percent {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range timeline {
		if !window.Contains(tx.Date) {
			continue
		}
		switch tx.Direction {
		case Income:
			income = income.Add(tx.Amount.Amount())
		case Expense:
			expenses = expenses.Add(tx.Amount.Amount())
		}
	}
	if income.IsZero() {
		return 0
	}
	return Percent(income.Sub(expenses).Div(income).InexactFloat64() * 100)
}
