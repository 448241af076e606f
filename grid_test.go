package sheetpulse

import (
	"strings"
	"testing"
	"time"
)

const sampleExpenseGrid = `Expense Categories,Jan-24,Feb-24,Mar-24
Fixed,,,
Rent,"1,800","1,800","1,800"
Internet,80,80,80
,,,
Food,,,
Groceries,450.25,510,480
Restaurants,120,(40),95
,,,
__proto__,1,2,3
One-off purchase,99,,
`

func TestParseGridLedger_Structure(t *testing.T) {
	ld := ParseExpenseGrid(sampleExpenseGrid)
	if ld.IsEmpty() {
		t.Fatal("sample grid parsed as empty")
	}
	if len(ld.Months) != 3 {
		t.Fatalf("months = %v, want 3 labels", ld.Months)
	}
	if len(ld.Categories) != 3 {
		t.Fatalf("got %d categories, want 3 (Fixed, Food, standalone)", len(ld.Categories))
	}

	fixed := ld.Categories[0]
	if fixed.Name != "Fixed" || len(fixed.Subcategories) != 2 {
		t.Errorf("first category = %q with %d subs", fixed.Name, len(fixed.Subcategories))
	}
	food := ld.Categories[1]
	if food.Name != "Food" || len(food.Subcategories) != 2 {
		t.Errorf("second category = %q with %d subs", food.Name, len(food.Subcategories))
	}
	standalone := ld.Categories[2]
	if standalone.Name != "One-off purchase" || len(standalone.Subcategories) != 1 {
		t.Errorf("standalone category = %q with %d subs", standalone.Name, len(standalone.Subcategories))
	}
}

// Every subcategory's monthly slice matches the month axis, and each
// category total is the sum of its subcategory totals.
func TestParseGridLedger_Invariants(t *testing.T) {
	ld := ParseExpenseGrid(sampleExpenseGrid)
	for _, cat := range ld.Categories {
		sum := Q(0)
		for _, sub := range cat.Subcategories {
			if len(sub.Monthly) != len(ld.Months) {
				t.Errorf("%s/%s: %d monthly values for %d months", cat.Name, sub.Name, len(sub.Monthly), len(ld.Months))
			}
			sum = sum.Add(Q(sub.Total()))
		}
		if !Q(cat.Total()).Equal(sum) {
			t.Errorf("%s: category total %s != sum of subcategory totals %s", cat.Name, cat.Total(), sum)
		}
	}
}

func TestParseGridLedger_ReservedLabelSkipped(t *testing.T) {
	ld := ParseExpenseGrid(sampleExpenseGrid)
	for _, cat := range ld.Categories {
		if cat.Name == "__proto__" {
			t.Fatal("reserved label became a category")
		}
		for _, sub := range cat.Subcategories {
			if sub.Name == "__proto__" {
				t.Fatal("reserved label became a subcategory")
			}
		}
	}
}

func TestParseGridLedger_IncomeStopsAtTotal(t *testing.T) {
	raw := strings.Join([]string{
		"Income,Jan-24,Feb-24",
		"Salary,5000,5000",
		"Side gigs,300,0",
		"Total,5300,5000",
		"Stray row after total,999,999",
	}, "\n")
	ld := ParseIncomeGrid(raw)
	if len(ld.Categories) != 2 {
		t.Fatalf("got %d categories, want 2 (parsing must stop at Total)", len(ld.Categories))
	}
	for _, cat := range ld.Categories {
		if strings.Contains(cat.Name, "Stray") {
			t.Error("rows after the Total line must be ignored")
		}
	}
}

func TestParseGridLedger_NoMonthRow(t *testing.T) {
	ld := ParseExpenseGrid("just,some,cells\n1,2,3")
	if !ld.IsEmpty() {
		t.Errorf("grid without month labels should parse empty, got %+v", ld)
	}
}

func TestFlatten(t *testing.T) {
	ld := ParseExpenseGrid(sampleExpenseGrid)
	txs := Flatten(ld, Expense, 2024)

	// Rent 3 + Internet 3 + Groceries 3 + Restaurants 3 + One-off 1 = 13
	// non-zero cells
	if len(txs) != 13 {
		t.Fatalf("got %d transactions, want 13", len(txs))
	}

	byMonth := map[time.Month]int{}
	for _, tx := range txs {
		if tx.ID == "" {
			t.Fatal("transaction without an ID")
		}
		if tx.Direction != Expense {
			t.Fatalf("direction = %v", tx.Direction)
		}
		if tx.Amount.IsNegative() {
			t.Errorf("amount %v is negative, flatten must take absolute values", tx.Amount)
		}
		if tx.Date.Day() != 1 {
			t.Errorf("date %s not pinned to first of month", tx.Date)
		}
		byMonth[tx.Date.Month()]++
	}
	if byMonth[time.January] != 5 {
		t.Errorf("january count = %d, want 5", byMonth[time.January])
	}

	// parenthetical (40) flows through as positive 40
	found := false
	for _, tx := range txs {
		if tx.Subcategory == "Restaurants" && tx.Date.Month() == time.February {
			found = true
			if tx.Amount.AsFloat() != 40 {
				t.Errorf("february restaurants = %v, want 40", tx.Amount)
			}
		}
	}
	if !found {
		t.Error("february restaurants transaction missing")
	}
}
