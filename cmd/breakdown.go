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

type breakdownCmd struct {
	focus    string
	dir      string
	category string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "break spending or income down by category" }
func (*breakdownCmd) Usage() string {
	return `sheetpulser breakdown [-focus <window>] [-dir <direction>] [-category <name>]

  Aggregates the timeline by category, or by the subcategories of one
  category when -category is given.

Usage Examples:
# Month to date spending by category.
$ sheetpulser breakdown

# Where the Food budget went this year.
$ sheetpulser breakdown -focus year -category Food

`
}

func (p *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.focus, "focus", "month", "Reporting window (month, quarter, year, rolling, all).")
	f.StringVar(&p.dir, "dir", "expense", "Direction to aggregate (expense or income).")
	f.StringVar(&p.category, "category", "", "Drill into the subcategories of this category.")
}

func (p *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	current, _ := sheetpulse.Windows(focus, sheetpulse.Today(), sheetpulse.Range{})
	var path []string
	title := fmt.Sprintf("%s by Category", dir)
	if p.category != "" {
		path = []string{p.category}
		title = fmt.Sprintf("%s in %s", dir, p.category)
	}

	totals := sheetpulse.AggregateDimensions(d.Timeline, path, dir, current)
	printMarkdown(renderer.BreakdownMarkdown(title, totals))
	return subcommands.ExitSuccess
}
