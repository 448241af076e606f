package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/suggest"
)

type suggestCmd struct {
	model string
}

func (*suggestCmd) Name() string { return "suggest" }
func (*suggestCmd) Synopsis() string {
	return "ask Gemini to propose categories for unlabeled transactions"
}
func (*suggestCmd) Usage() string {
	return `sheetpulser suggest [-model <name>] <description>...

  Sends the given transaction descriptions to Gemini along with the
  category taxonomy found in the export, and prints proposed labels.
  Requires a GEMINI_API_KEY in the environment or a .env file.

Usage Examples:
$ sheetpulser suggest "PRESTO AUTOLOAD" "STEAM PURCHASE"

`
}

func (p *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.model, "model", suggest.DefaultModel, "Gemini model to use.")
}

// taxonomy derives the allowed category labels from the export's own
// grids, so the model can only propose labels that already exist.
func taxonomy(timeline []sheetpulse.NormalizedTransaction) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, tx := range timeline {
		if tx.Category == "" {
			continue
		}
		if seen[tx.Category] == nil {
			seen[tx.Category] = make(map[string]bool)
			out[tx.Category] = nil
		}
		if tx.Subcategory != "" && !seen[tx.Category][tx.Subcategory] {
			seen[tx.Category][tx.Subcategory] = true
			out[tx.Category] = append(out[tx.Category], tx.Subcategory)
		}
	}
	return out
}

func (p *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	descriptions := f.Args()
	if len(descriptions) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no transaction descriptions given")
		return subcommands.ExitUsageError
	}

	d, err := loadDashboard()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s, err := suggest.New(ctx, p.model, taxonomy(d.Timeline))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	proposals, err := s.Suggest(ctx, descriptions)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for _, prop := range proposals {
		fmt.Printf("%s -> %s / %s\n", prop.Description, prop.Category, prop.Subcategory)
	}
	return subcommands.ExitSuccess
}
