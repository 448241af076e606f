package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/rates"
	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/renderer"
)

type summaryCmd struct {
	focus string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard front-page summary" }
func (*summaryCmd) Usage() string {
	return `sheetpulser summary [-focus <window>]

  Shows net worth, portfolio value, cash flow and portfolio attribution
  for the selected reporting window.

Usage Examples:
# Month to date summary of the export in the current folder.
$ sheetpulser summary

# Year to date.
$ sheetpulser summary -focus year

`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.focus, "focus", "month", "Reporting window (month, quarter, year, rolling, all).")
}

// converter builds the FX converter from the -rates-file flag, an
// identity converter when the flag is unset.
func converter() sheetpulse.Converter {
	if *ratesFile == "" {
		return sheetpulse.NewConverter(*baseCurrency, nil)
	}
	payload, err := os.ReadFile(*ratesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read rates file: %v\n", err)
		return sheetpulse.NewConverter(*baseCurrency, nil)
	}
	table, err := rates.Parse(payload, "EUR")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot parse rates file: %v\n", err)
		return sheetpulse.NewConverter(*baseCurrency, nil)
	}
	if table.Base != *baseCurrency {
		if rebased, err := table.Invert(*baseCurrency); err == nil {
			table = rebased
		}
	}
	return sheetpulse.NewConverter(*baseCurrency, table.Rates)
}

func (p *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	focus, err := parseFocus(p.focus)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	d, err := loadDashboard()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	today := sheetpulse.Today()
	current, _ := sheetpulse.Windows(focus, today, sheetpulse.Range{})
	fx := converter()

	netWorth := sheetpulse.M(0, fx.Base)
	if len(d.Series) > 0 {
		netWorth = fx.Convert(d.Series[len(d.Series)-1].Value)
	}

	// all figures below are folded in the base currency, so sheet tabs
	// declaring their own currency convert instead of colliding
	income := sheetpulse.M(0, fx.Base)
	expenses := sheetpulse.M(0, fx.Base)
	for _, row := range sheetpulse.AggregateDimensions(d.Timeline, nil, sheetpulse.Income, current) {
		income = income.Add(fx.Convert(row.Total))
	}
	for _, row := range sheetpulse.AggregateDimensions(d.Timeline, nil, sheetpulse.Expense, current) {
		expenses = expenses.Add(fx.Convert(row.Total))
	}

	s := &renderer.Summary{
		AsOf:        today,
		Window:      current,
		Focus:       focus,
		NetWorth:    netWorth,
		Portfolio:   sheetpulse.PortfolioValue(d.Holdings, map[string]decimal.Decimal{}, fx),
		Income:      income,
		Expenses:    expenses,
		SavingsRate: sheetpulse.SavingsRate(d.Timeline, current),
		Velocity:    sheetpulse.NetWorthVelocity(d.Series, current),
		Attribution: sheetpulse.PortfolioAttribution(d.Series, d.Trades, current, fx),
	}
	printMarkdown(renderer.SummaryMarkdown(s))
	return subcommands.ExitSuccess
}
