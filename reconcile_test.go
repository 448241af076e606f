package sheetpulse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func cad(v float64) Money { return M(v, "CAD") }

func buy(d Date, ticker string, qty, total float64) Trade {
	return Trade{Date: d, Ticker: ticker, Side: Buy, Quantity: Q(qty), Total: cad(total), Price: cad(total / qty)}
}

func sell(d Date, ticker string, qty, total float64) Trade {
	return Trade{Date: d, Ticker: ticker, Side: Sell, Quantity: Q(qty), Total: cad(total), Price: cad(total / qty)}
}

func TestMergeHoldings_SyntheticFromTrades(t *testing.T) {
	jan := NewDate(2024, time.January, 10)
	feb := NewDate(2024, time.February, 10)
	trades := []Trade{
		buy(jan, "BTC", 0.5, 15000),
		buy(feb, "BTC", 0.5, 25000),
		sell(feb, "BTC", 0.25, 15000),
	}

	merged := MergeHoldings(nil, trades, nil)
	if len(merged) != 1 {
		t.Fatalf("got %d holdings, want 1 synthetic", len(merged))
	}
	h := merged[0]
	if !h.Synthetic {
		t.Error("trade-derived holding must be synthetic")
	}
	if !h.Quantity.Equal(Q(0.75)) {
		t.Errorf("quantity = %s, want 0.75", h.Quantity)
	}
	// average cost over buys only: 40000 / 1.0
	if h.AvgCost.AsFloat() != 40000 {
		t.Errorf("avg cost = %v, want 40000", h.AvgCost)
	}
	if h.Account != CryptoWalletAccount {
		t.Errorf("account = %q, want %q", h.Account, CryptoWalletAccount)
	}
	// price from the most recent trade
	if h.Price.AsFloat() != 60000 {
		t.Errorf("price = %v, want 60000 (most recent trade)", h.Price)
	}
}

func TestMergeHoldings_DeclaredWins(t *testing.T) {
	declared := []Holding{{Ticker: "VEQT", Quantity: Q(100), Account: "TFSA"}}
	trades := []Trade{buy(NewDate(2024, time.March, 1), "VEQT", 10, 400)}

	merged := MergeHoldings(declared, trades, nil)
	if len(merged) != 1 {
		t.Fatalf("got %d holdings, want 1 (no duplicate for declared ticker)", len(merged))
	}
	if merged[0].Synthetic {
		t.Error("declared holding must stay non-synthetic")
	}
}

func TestMergeHoldings_FullySoldTickerOmitted(t *testing.T) {
	d := NewDate(2024, time.April, 1)
	trades := []Trade{buy(d, "DOGE", 100, 50), sell(d, "DOGE", 100, 60)}
	if merged := MergeHoldings(nil, trades, nil); len(merged) != 0 {
		t.Errorf("got %d holdings for a flat position, want 0", len(merged))
	}
}

func TestMergeHoldings_CashInjection(t *testing.T) {
	assets := []Asset{
		{Name: "My TFSA", Type: "Other", Value: cad(12000)},
		{Name: "TFSA cash portion", Type: "Other", Value: cad(500)},
		{Name: "House", Value: cad(450000)},
	}

	t.Run("injected when account has no holdings", func(t *testing.T) {
		merged := MergeHoldings(nil, nil, assets[:1])
		if len(merged) != 1 {
			t.Fatalf("got %d holdings, want 1 injected cash line", len(merged))
		}
		h := merged[0]
		if h.Ticker != "CASH" || !h.Synthetic || h.Account != "TFSA" {
			t.Errorf("injected holding = %+v", h)
		}
		if HoldingValue(h, nil).AsFloat() != 12000 {
			t.Errorf("injected value = %v, want 12000", HoldingValue(h, nil))
		}
	})

	t.Run("not injected once account has real holdings", func(t *testing.T) {
		declared := []Holding{{Ticker: "VEQT", Quantity: Q(100), Account: "TFSA", Price: cad(42)}}
		merged := MergeHoldings(declared, nil, assets[:1])
		if len(merged) != 1 {
			t.Errorf("got %d holdings, want 1 (no double-counting)", len(merged))
		}
	})

	t.Run("explicit cash line injected regardless", func(t *testing.T) {
		declared := []Holding{{Ticker: "VEQT", Quantity: Q(100), Account: "TFSA", Price: cad(42)}}
		merged := MergeHoldings(declared, nil, assets[1:2])
		if len(merged) != 2 {
			t.Errorf("got %d holdings, want 2 (explicit cash line always injected)", len(merged))
		}
	})

	t.Run("non-registered asset ignored", func(t *testing.T) {
		if merged := MergeHoldings(nil, nil, assets[2:]); len(merged) != 0 {
			t.Errorf("got %d holdings for a house, want 0", len(merged))
		}
	})
}

// Reconciled lot quantities must sum to exactly the trade-implied net
// quantity, not merely approximately.
// A trades tab with a currency column can quote different rows of the same
// ticker in different currencies. The fold must degrade to a rough cost
// basis in the first currency seen, never crash the merge.
func TestMergeHoldings_MixedCurrencyTrades(t *testing.T) {
	trades := []Trade{
		buy(MustDate("2024-01-10"), "VOO", 10, 1000),
		{Date: MustDate("2024-02-10"), Ticker: "VOO", Side: Buy, Quantity: Q(5), Total: M(500, "USD"), Price: M(100, "USD")},
	}

	merged := MergeHoldings(nil, trades, nil)
	if len(merged) != 1 {
		t.Fatalf("got %d holdings, want 1 synthetic", len(merged))
	}
	h := merged[0]
	if !h.Quantity.Equal(Q(15)) {
		t.Errorf("quantity = %s, want 15", h.Quantity)
	}
	// (1000 + 500) / 15, raw amounts summed, first currency kept
	if h.AvgCost.AsFloat() != 100 {
		t.Errorf("avg cost = %v, want 100", h.AvgCost)
	}
	if h.AvgCost.Currency() != "CAD" {
		t.Errorf("avg cost currency = %q, want CAD", h.AvgCost.Currency())
	}

	// reconciliation over the same mixed-currency history is quantity math
	// and passes through cleanly
	declared := []Holding{{Ticker: "VOO", Quantity: Q(14)}}
	out := ReconcileQuantities(declared, trades)
	if !out[0].Quantity.Equal(Q(15)) {
		t.Errorf("reconciled quantity = %s, want 15", out[0].Quantity)
	}
}

func TestReconcileQuantities_ExactSum(t *testing.T) {
	d := NewDate(2024, time.May, 1)
	trades := []Trade{buy(d, "VEQT", 100, 4000)}
	holdings := []Holding{
		{Ticker: "VEQT", Quantity: Q(33.333333)},
		{Ticker: "VEQT", Quantity: Q(33.333333)},
		{Ticker: "VEQT", Quantity: Q(33.333333)},
	}

	out := ReconcileQuantities(holdings, trades)
	sum := Q(0)
	for _, h := range out {
		sum = sum.Add(h.Quantity)
	}
	if !sum.Equal(Q(100)) {
		t.Errorf("reconciled sum = %s, want exactly 100", sum)
	}
}

func TestReconcileQuantities_AgreementUntouched(t *testing.T) {
	d := NewDate(2024, time.May, 1)
	trades := []Trade{buy(d, "VEQT", 100, 4000)}
	holdings := []Holding{{Ticker: "VEQT", Quantity: Q(100)}}

	out := ReconcileQuantities(holdings, trades)
	if !out[0].Quantity.Equal(Q(100)) {
		t.Errorf("quantity changed to %s despite agreement", out[0].Quantity)
	}
}

func TestReconcileQuantities_NoTradesUntouched(t *testing.T) {
	holdings := []Holding{{Ticker: "XEQT", Quantity: Q(12)}}
	out := ReconcileQuantities(holdings, nil)
	if !out[0].Quantity.Equal(Q(12)) {
		t.Errorf("quantity = %s, want 12", out[0].Quantity)
	}
}

func TestHoldingValue(t *testing.T) {
	h := Holding{Ticker: "VEQT", Quantity: Q(10), Price: cad(40)}

	t.Run("sheet price", func(t *testing.T) {
		if got := HoldingValue(h, nil); got.AsFloat() != 400 {
			t.Errorf("value = %v, want 400", got)
		}
	})
	t.Run("live quote wins", func(t *testing.T) {
		quotes := map[string]decimal.Decimal{"VEQT": decimal.NewFromInt(50)}
		if got := HoldingValue(h, quotes); got.AsFloat() != 500 {
			t.Errorf("value = %v, want 500", got)
		}
	})
	t.Run("market value override beats sheet price", func(t *testing.T) {
		o := h
		o.MarketValue = cad(430)
		if got := HoldingValue(o, nil); got.AsFloat() != 430 {
			t.Errorf("value = %v, want 430", got)
		}
	})
	t.Run("negligible quantity worth nothing", func(t *testing.T) {
		o := h
		o.Quantity = Q(0.0000001)
		if got := HoldingValue(o, nil); !got.IsZero() {
			t.Errorf("value = %v, want 0", got)
		}
	})
}

func TestPortfolioValue_ConvertsCurrency(t *testing.T) {
	fx := NewConverter("CAD", map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(1.35),
	})
	holdings := []Holding{
		{Ticker: "VEQT", Quantity: Q(10), Price: cad(40)},
		{Ticker: "VOO", Quantity: Q(2), Price: M(100, "USD")},
	}
	got := PortfolioValue(holdings, nil, fx)
	if got.Currency() != "CAD" {
		t.Errorf("currency = %q, want CAD", got.Currency())
	}
	if got.AsFloat() != 400+270 {
		t.Errorf("total = %v, want 670", got)
	}
}
