package sheetpulse

import (
	"strings"
	"testing"
	"time"
)

func TestParseAssets(t *testing.T) {
	raw := strings.Join([]string{
		"My Assets,,",
		"Name,Type,Value,Last Updated",
		"My TFSA,Other,\"$12,000\",2024-01-15",
		"TD Chequing,Cash,\"3,500\",",
		",,,",
		"House,Real Estate,\"450,000\",Jan-24",
	}, "\n")

	assets := ParseAssets(raw)
	if len(assets) != 3 {
		t.Fatalf("got %d assets, want 3", len(assets))
	}

	tfsa := assets[0]
	if tfsa.Name != "My TFSA" || tfsa.Class != ClassInvestment {
		t.Errorf("first asset = %+v, want TFSA investment", tfsa)
	}
	if tfsa.Value.AsFloat() != 12000 {
		t.Errorf("TFSA value = %v, want 12000", tfsa.Value)
	}
	if tfsa.Updated != NewDate(2024, time.January, 15) {
		t.Errorf("TFSA updated = %s", tfsa.Updated)
	}
	if assets[1].Class != ClassCash {
		t.Errorf("chequing class = %v, want cash", assets[1].Class)
	}
	if assets[2].Class != ClassFixed {
		t.Errorf("house class = %v, want fixed", assets[2].Class)
	}
}

// A fully blank row never produces a record from any factory.
func TestFactories_RejectBlankRows(t *testing.T) {
	blank := ",,,\n,,,"
	if got := ParseAssets("Name,Type,Value\n" + blank); len(got) != 0 {
		t.Errorf("ParseAssets produced %d records from blank rows", len(got))
	}
	if got := ParseHoldings("Ticker,Quantity,Price\n" + blank); len(got) != 0 {
		t.Errorf("ParseHoldings produced %d records from blank rows", len(got))
	}
	if got := ParseTrades("Date,Ticker,Side,Quantity,Price\n" + blank); len(got) != 0 {
		t.Errorf("ParseTrades produced %d records from blank rows", len(got))
	}
	if got := ParseNetWorthLog("Date,Net Worth\n" + blank); len(got) != 0 {
		t.Errorf("ParseNetWorthLog produced %d records from blank rows", len(got))
	}
}

func TestParseHoldings(t *testing.T) {
	raw := strings.Join([]string{
		"Ticker,Name,Quantity,Avg Cost,Price,Market Value,Account",
		"VEQT.TO,Vanguard All-Equity,100,35.10,42.17,,TFSA",
		"btc,Bitcoin,0.5,30000,60000,,Crypto Wallet",
		",,,,,,",
	}, "\n")

	holdings := ParseHoldings(raw)
	if len(holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(holdings))
	}
	if holdings[0].Ticker != "VEQT" {
		t.Errorf("ticker = %q, want VEQT", holdings[0].Ticker)
	}
	if holdings[0].Account != "TFSA" {
		t.Errorf("account = %q", holdings[0].Account)
	}
	if holdings[1].Ticker != "BTC" {
		t.Errorf("ticker = %q, want BTC", holdings[1].Ticker)
	}
	if holdings[0].Synthetic {
		t.Error("sheet-declared holding must not be synthetic")
	}
}

func TestParseTrades_DerivedFields(t *testing.T) {
	raw := strings.Join([]string{
		"Date,Ticker,Action,Quantity,Price,Total",
		"2024-01-10,VEQT,Buy,10,40,",
		"2024-02-01,VEQT,Sell,5,,210",
		"2024-03-05,btc,buy,0.1,,",
		"2024-04-02,XEQT,Buy,,30,600",
	}, "\n")

	trades := ParseTrades(raw)
	if len(trades) != 4 {
		t.Fatalf("got %d trades, want 4", len(trades))
	}

	t.Run("total derived from price and quantity", func(t *testing.T) {
		if trades[0].Total.AsFloat() != 400 {
			t.Errorf("total = %v, want 400", trades[0].Total)
		}
		if trades[0].Side != Buy {
			t.Errorf("side = %v, want Buy", trades[0].Side)
		}
	})
	t.Run("price derived from total and quantity", func(t *testing.T) {
		if trades[1].Price.AsFloat() != 42 {
			t.Errorf("price = %v, want 42", trades[1].Price)
		}
		if trades[1].Side != Sell {
			t.Errorf("side = %v, want Sell", trades[1].Side)
		}
	})
	t.Run("quantity derived from total and price", func(t *testing.T) {
		if !trades[3].Quantity.Equal(Q(20)) {
			t.Errorf("quantity = %s, want 20", trades[3].Quantity)
		}
	})
	t.Run("ticker normalized and date parsed", func(t *testing.T) {
		if trades[2].Ticker != "BTC" {
			t.Errorf("ticker = %q", trades[2].Ticker)
		}
		if trades[0].Date != NewDate(2024, time.January, 10) {
			t.Errorf("date = %s", trades[0].Date)
		}
	})
}

func TestParseNetWorthLog(t *testing.T) {
	raw := strings.Join([]string{
		"Date,Net Worth",
		"2024-03-01,\"105,000\"",
		"2024-01-01,\"100,000\"",
		"not a date,\"999,999\"",
		"2024-02-01,",
		"2024-02-01,\"102,500\"",
	}, "\n")

	series := ParseNetWorthLog(raw)
	if len(series) != 3 {
		t.Fatalf("got %d entries, want 3 (rows without both date and value dropped)", len(series))
	}
	for i := 1; i < len(series); i++ {
		if series[i].Date.Before(series[i-1].Date) {
			t.Fatalf("series not sorted: %s before %s", series[i].Date, series[i-1].Date)
		}
	}
	if series[0].Value.AsFloat() != 100000 {
		t.Errorf("first value = %v, want 100000", series[0].Value)
	}
}

// A freshly started log legitimately begins at zero; only rows whose value
// cell carries no number at all are decoration.
func TestParseNetWorthLog_ExplicitZeroKept(t *testing.T) {
	raw := strings.Join([]string{
		"Date,Net Worth",
		"2024-01-01,0",
		"2024-02-01,\"$0.00\"",
		"2024-03-01,n/a",
		"2024-04-01,",
		"2024-05-01,\"12,000\"",
	}, "\n")

	series := ParseNetWorthLog(raw)
	if len(series) != 3 {
		t.Fatalf("got %d entries, want 3 (two explicit zeros and one value)", len(series))
	}
	if !series[0].Value.IsZero() || !series[1].Value.IsZero() {
		t.Errorf("zero points lost: %v, %v", series[0].Value, series[1].Value)
	}
	if series[2].Value.AsFloat() != 12000 {
		t.Errorf("last value = %v, want 12000", series[2].Value)
	}
}

func TestParseAccounts(t *testing.T) {
	raw := strings.Join([]string{
		"Account,Institution,Balance",
		"Everyday Chequing,TD,\"2,345.67\"",
		"Emergency Fund,EQ Bank,\"15,000\"",
	}, "\n")

	accounts := ParseAccounts(raw)
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].Balance.AsFloat() != 2345.67 {
		t.Errorf("balance = %v", accounts[0].Balance)
	}
}
