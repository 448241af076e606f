// Package cmd implements the CLI application over exported dashboard
// sheets.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	sheetpulse "github.com/san1tyfade/Fintrack-Sheetpulser-Production-sub000"
)

// Commands lists every subcommand a main package should register.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&breakdownCmd{},
	&varianceCmd{},
	&holdingsCmd{},
	&suggestCmd{},
	&exportCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var sheetDir = flag.String("sheet-dir", ".", "Path to the folder holding exported sheet tabs (CSV or TSV)")
var baseCurrency = flag.String("currency", sheetpulse.DefaultCurrency, "Reporting currency")
var ratesFile = flag.String("rates-file", "", "Path to an ECB-style daily rates XML document, for multi-currency sheets")
var Verbose = flag.Bool("v", false, "Enable verbose logging")

// Setup loads .env and configures logging. Main packages call it once,
// after flag.Parse.
func Setup() {
	// a missing .env file is the common case, not an error
	_ = godotenv.Load()

	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	sheetpulse.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger())
}

// tabNames maps each sheet tab to the file basenames it may be exported
// under. Lookup tries .csv, .tsv and .txt in that order.
var tabNames = map[string][]string{
	"assets":        {"assets", "asset"},
	"holdings":      {"holdings", "portfolio"},
	"trades":        {"trades", "trade_log", "transactions"},
	"subscriptions": {"subscriptions", "recurring"},
	"accounts":      {"accounts", "bank_accounts"},
	"networth":      {"networth", "net_worth", "net_worth_log"},
	"expenses":      {"expenses", "expense_categories"},
	"income":        {"income", "income_categories"},
	"debts":         {"debts", "debt"},
	"taxes":         {"taxes", "tax"},
}

// readTab returns the raw content of one exported tab, or "" when the
// export does not include it. Only unexpected filesystem errors are
// returned.
func readTab(tab string) (string, error) {
	for _, base := range tabNames[tab] {
		for _, ext := range []string{".csv", ".tsv", ".txt"} {
			raw, err := os.ReadFile(filepath.Join(*sheetDir, base+ext))
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return "", fmt.Errorf("reading %s tab: %w", tab, err)
			}
			return string(raw), nil
		}
	}
	return "", nil
}

// dashboard is the fully normalized view of one sheet export.
type dashboard struct {
	Assets   []sheetpulse.Asset
	Holdings []sheetpulse.Holding
	Trades   []sheetpulse.Trade
	Accounts []sheetpulse.BankAccount
	Series   []sheetpulse.NetWorthEntry
	Timeline []sheetpulse.NormalizedTransaction
}

// loadDashboard reads every tab the export provides and runs the whole
// normalization pipeline. Missing tabs degrade to empty slices.
func loadDashboard() (*dashboard, error) {
	d := &dashboard{}

	if raw, err := readTab("assets"); err != nil {
		return nil, err
	} else if raw != "" {
		d.Assets = sheetpulse.ParseAssets(raw)
	}
	if raw, err := readTab("holdings"); err != nil {
		return nil, err
	} else if raw != "" {
		d.Holdings = sheetpulse.ParseHoldings(raw)
	}
	if raw, err := readTab("trades"); err != nil {
		return nil, err
	} else if raw != "" {
		d.Trades = sheetpulse.ParseTrades(raw)
	}
	if raw, err := readTab("accounts"); err != nil {
		return nil, err
	} else if raw != "" {
		d.Accounts = sheetpulse.ParseAccounts(raw)
	}
	if raw, err := readTab("networth"); err != nil {
		return nil, err
	} else if raw != "" {
		d.Series = sheetpulse.ParseNetWorthLog(raw)
	}

	fallbackYear := sheetpulse.Today().Year()
	if raw, err := readTab("expenses"); err != nil {
		return nil, err
	} else if raw != "" {
		ld := sheetpulse.ParseExpenseGrid(raw)
		d.Timeline = append(d.Timeline, sheetpulse.Flatten(ld, sheetpulse.Expense, fallbackYear)...)
	}
	if raw, err := readTab("income"); err != nil {
		return nil, err
	} else if raw != "" {
		ld := sheetpulse.ParseIncomeGrid(raw)
		d.Timeline = append(d.Timeline, sheetpulse.Flatten(ld, sheetpulse.Income, fallbackYear)...)
	}

	// reconcile holdings against trade history and account-level cash
	d.Holdings = sheetpulse.MergeHoldings(d.Holdings, d.Trades, d.Assets)
	d.Holdings = sheetpulse.ReconcileQuantities(d.Holdings, d.Trades)

	return d, nil
}

// parseFocus maps a flag value to a reporting window.
func parseFocus(s string) (sheetpulse.Focus, error) {
	switch strings.ToLower(s) {
	case "month", "mtd":
		return sheetpulse.MonthToDate, nil
	case "quarter", "qtd":
		return sheetpulse.QuarterToDate, nil
	case "year", "ytd":
		return sheetpulse.YearToDate, nil
	case "rolling", "12m":
		return sheetpulse.Rolling12Months, nil
	case "all":
		return sheetpulse.AllTime, nil
	}
	return 0, fmt.Errorf("unknown focus %q (want month, quarter, year, rolling or all)", s)
}
