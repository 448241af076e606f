package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/quotes"
	"github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000/renderer"
)

type holdingsCmd struct {
	quotesFile string
	listPath   string
	symbolKey  string
	priceKey   string
	quoteTTL   time.Duration
	movers     int
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the reconciled holdings view" }
func (*holdingsCmd) Usage() string {
	return `sheetpulser holdings [-quotes <file>] [-movers <n>]

  Shows every holding after merging sheet rows with trade history and
  reconciling lot quantities. A pre-fetched provider JSON payload can be
  overlaid to value positions at fresher prices.

Usage Examples:
# Holdings valued at sheet prices.
$ sheetpulser holdings

# Overlay quotes from a saved provider response.
$ sheetpulser holdings -quotes quotes.json -movers 5

`
}

func (p *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.quotesFile, "quotes", "", "Pre-fetched provider JSON payload with live prices.")
	f.StringVar(&p.listPath, "quotes-path", "$.quotes", "jsonpath addressing the quote list in the payload.")
	f.StringVar(&p.symbolKey, "symbol-key", "symbol", "Field holding the ticker in each quote entry.")
	f.StringVar(&p.priceKey, "price-key", "price", "Field holding the price in each quote entry.")
	f.DurationVar(&p.quoteTTL, "quote-ttl", 24*time.Hour, "Ignore quote payloads saved longer ago than this.")
	f.IntVar(&p.movers, "movers", 0, "Also show the n largest unrealized moves.")
}

func (p *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := loadDashboard()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	live := map[string]decimal.Decimal{}
	if p.quotesFile != "" {
		payload, err := os.ReadFile(p.quotesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading quotes payload: %v\n", err)
			return subcommands.ExitFailure
		}
		extracted, err := quotes.ExtractMap(payload, p.listPath, p.symbolKey, p.priceKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting quotes: %v\n", err)
			return subcommands.ExitFailure
		}
		// Quotes age with the payload file, not with this run. Entries are
		// stamped at the file's mtime so a stale saved payload falls back
		// to sheet prices instead of valuing positions on old data.
		cache := sheetpulse.NewPriceCache(p.quoteTTL)
		if info, err := os.Stat(p.quotesFile); err == nil {
			saved := info.ModTime()
			cache.SetClock(func() time.Time { return saved })
		}
		for ticker, price := range extracted {
			cache.Put(ticker, price)
		}
		cache.SetClock(time.Now)
		live = cache.Snapshot()
	}

	printMarkdown(renderer.HoldingsMarkdown(d.Holdings, live))

	if p.movers > 0 {
		movers := sheetpulse.TopMovers(d.Holdings, live, p.movers)
		printMarkdown(renderer.BreakdownMarkdown("Top Movers", movers))
	}
	return subcommands.ExitSuccess
}
