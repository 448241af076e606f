package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/renderer"
)

type varianceCmd struct {
	focus        string
	dir          string
	excludeFixed bool
}

func (*varianceCmd) Name() string { return "variance" }
func (*varianceCmd) Synopsis() string {
	return "compare category totals against the preceding window"
}
func (*varianceCmd) Usage() string {
	return `sheetpulser variance [-focus <window>] [-dir <direction>] [-discretionary]

  Compares each category's total in the current window against the
  same-length window immediately before it, sorted by largest movement.

Usage Examples:
# What moved this month versus last month.
$ sheetpulser variance

# Ignore fixed costs.
$ sheetpulser variance -discretionary

`
}

func (p *varianceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.focus, "focus", "month", "Reporting window (month, quarter, year, rolling).")
	f.StringVar(&p.dir, "dir", "expense", "Direction to compare (expense or income).")
	f.BoolVar(&p.excludeFixed, "discretionary", false, "Exclude the Fixed category.")
}

func (p *varianceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	focus, err := parseFocus(p.focus)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	dir := sheetpulse.Expense
	if p.dir == "income" {
		dir = sheetpulse.Income
	}

	d, err := loadDashboard()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	current, shadow := sheetpulse.Windows(focus, sheetpulse.Today(), sheetpulse.Range{})
	rows := sheetpulse.TemporalVariance(d.Timeline, dir, current, shadow, p.excludeFixed)
	printMarkdown(renderer.VarianceMarkdown(rows, current, shadow))
	return subcommands.ExitSuccess
}
