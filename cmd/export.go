package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
)

type exportCmd struct {
	focus string
	out   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the normalized timeline as JSONL" }
func (*exportCmd) Usage() string {
	return `sheetpulser export [-focus <window>] [-o <file>]

  Writes the normalized timeline, one transaction per line, to stdout or
  to a file. The output is stable across runs of the same sheets, which
  makes it practical to keep under version control.

Usage Examples:
# Everything ever recorded, to stdout.
$ sheetpulser export -focus all

# This year, to a file.
$ sheetpulser export -focus year -o timeline.jsonl

`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.focus, "focus", "all", "Reporting window (month, quarter, year, rolling, all).")
	f.StringVar(&p.out, "o", "", "Destination file, stdout when empty.")
}

func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	current, _ := sheetpulse.Windows(focus, sheetpulse.Today(), sheetpulse.Range{})
	var selected []sheetpulse.NormalizedTransaction
	for _, tx := range d.Timeline {
		if current.Contains(tx.Date) {
			selected = append(selected, tx)
		}
	}

	w := os.Stdout
	if p.out != "" {
		file, err := os.Create(p.out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := sheetpulse.EncodeTimeline(w, selected); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
