// Package renderer turns aggregation results into markdown reports.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
)

// Summary is everything the dashboard front page shows for one window.
type Summary struct {
	AsOf        sheetpulse.Date
	Window      sheetpulse.Range
	Focus       sheetpulse.Focus
	NetWorth    sheetpulse.Money
	Portfolio   sheetpulse.Money
	Income      sheetpulse.Money
	Expenses    sheetpulse.Money
	SavingsRate sheetpulse.Percent
	Velocity    sheetpulse.Money
	Attribution sheetpulse.Attribution
}

// SummaryMarkdown renders the front-page summary.
func SummaryMarkdown(s *Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dashboard Summary on %s", s.AsOf))
	doc.PlainText(fmt.Sprintf("Window: %s (%s to %s)", s.Focus, s.Window.From, s.Window.To))
	doc.PlainText(fmt.Sprintf("Net Worth: %s", s.NetWorth))
	doc.PlainText(fmt.Sprintf("Portfolio Value: %s", s.Portfolio))

	doc.H2("Cash Flow")
	doc.Table(md.TableSet{
		Header: []string{"Measure", "Value"},
		Rows: [][]string{
			{"Income", s.Income.String()},
			{"Expenses", s.Expenses.String()},
			{"Savings Rate", s.SavingsRate.String()},
			{"Net Worth Velocity (per day)", s.Velocity.SignedString()},
		},
	})

	doc.H2("Portfolio Attribution")
	a := s.Attribution
	doc.Table(md.TableSet{
		Header: []string{"Component", "Amount"},
		Rows: [][]string{
			{"Start Value", a.Start.String()},
			{"Contributions", a.Contributions.String()},
			{"Withdrawals", a.Withdrawals.String()},
			{"Market Gain", a.MarketGain.SignedString()},
			{"End Value", a.End.String()},
			{"Return", a.Return.SignedString()},
		},
	})

	return doc.String()
}

// BreakdownMarkdown renders a dimensional breakdown as a table, largest
// slice first, with a share column against the grand total.
func BreakdownMarkdown(title string, totals []sheetpulse.DimensionTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(totals) == 0 {
		doc.PlainText("No matching transactions.")
		return doc.String()
	}

	grand := 0.0
	for _, d := range totals {
		grand += d.Total.AsFloat()
	}

	rows := make([][]string, 0, len(totals))
	for _, d := range totals {
		share := "-"
		if grand != 0 {
			share = fmt.Sprintf("%.1f%%", d.Total.AsFloat()/grand*100)
		}
		rows = append(rows, []string{d.Name, d.Total.String(), fmt.Sprintf("%d", d.Count), share})
	}
	doc.Table(md.TableSet{
		Header: []string{"Label", "Total", "Count", "Share"},
		Rows:   rows,
	})
	return doc.String()
}

// VarianceMarkdown renders period-over-period category movement.
func VarianceMarkdown(rows []sheetpulse.VarianceRow, current, shadow sheetpulse.Range) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Spending Variance")
	doc.PlainText(fmt.Sprintf("%s to %s, compared with %s to %s",
		current.From, current.To, shadow.From, shadow.To))

	if len(rows) == 0 {
		doc.PlainText("No movement to report.")
		return doc.String()
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Name,
			r.Current.String(),
			r.Previous.String(),
			r.Delta.SignedString(),
			r.Pct.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Current", "Previous", "Delta", "Change"},
		Rows:   table,
	})
	return doc.String()
}

// HoldingsMarkdown renders the reconciled holdings view, one row per lot,
// valued with the given quote overlay. Synthetic lots are marked so the
// reader can tell sheet rows from inferred ones.
func HoldingsMarkdown(holdings []sheetpulse.Holding, quotes map[string]decimal.Decimal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Holdings")

	if len(holdings) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		synthetic := " "
		if h.Synthetic {
			synthetic = "X"
		}
		rows = append(rows, []string{
			h.Ticker,
			h.Account,
			h.Quantity.String(),
			sheetpulse.HoldingValue(h, quotes).String(),
			synthetic,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Account", "Quantity", "Value", "Inferred"},
		Rows:   rows,
	})
	return doc.String()
}
