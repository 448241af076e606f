package sheetpulse

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain integer", "42", "42"},
		{"plain decimal", "1234.5", "1234.5"},
		{"thousand separators", "1,234.50", "1234.5"},
		{"currency symbol", "$1,234.50", "1234.5"},
		{"euro symbol", "€99.99", "99.99"},
		{"parenthetical negative", "(1,234.50)", "-1234.5"},
		{"explicit negative", "-42.1", "-42.1"},
		{"percent sign stripped", "45%", "45"},
		{"surrounding spaces", "  7.5 ", "7.5"},
		{"empty cell", "", "0"},
		{"dash placeholder", "-", "0"},
		{"free text", "n/a", "0"},
		{"crypto symbol", "₿0.5", "0.5"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseNumber(tc.raw)
			want, _ := decimal.NewFromString(tc.want)
			if !got.Equal(want) {
				t.Errorf("ParseNumber(%q) = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

// Re-parsing a parsed number's own rendering must not change the value.
func TestParseNumber_Idempotence(t *testing.T) {
	inputs := []string{"$1,234.50", "(99)", "45%", "1.000001", "abc", "", "₿0.25", "  -3,000 "}
	for _, raw := range inputs {
		once := ParseNumber(raw)
		twice := ParseNumber(once.String())
		if !once.Equal(twice) {
			t.Errorf("ParseNumber not idempotent for %q: first %s, second %s", raw, once, twice)
		}
	}
}

func TestParseMoney_DefaultsCurrency(t *testing.T) {
	m := ParseMoney("$1,000", "")
	if m.Currency() != DefaultCurrency {
		t.Errorf("ParseMoney currency = %q, want %q", m.Currency(), DefaultCurrency)
	}
	if !m.Amount().Equal(decimal.NewFromInt(1000)) {
		t.Errorf("ParseMoney amount = %s, want 1000", m.Amount())
	}
}

func TestSplitRows_DelimiterDetection(t *testing.T) {
	t.Run("tab separated", func(t *testing.T) {
		rows := SplitRows("a\tb\tc\n1\t2\t3")
		if len(rows) != 2 || len(rows[0]) != 3 {
			t.Fatalf("got %v", rows)
		}
		if rows[1][2] != "3" {
			t.Errorf("cell = %q, want 3", rows[1][2])
		}
	})
	t.Run("comma separated", func(t *testing.T) {
		rows := SplitRows("a,b\n1,2")
		if len(rows) != 2 || len(rows[0]) != 2 {
			t.Fatalf("got %v", rows)
		}
	})
	t.Run("quoted comma stays in cell", func(t *testing.T) {
		rows := SplitRows(`"Food, Drink",100`)
		if rows[0][0] != "Food, Drink" {
			t.Errorf("cell = %q, want %q", rows[0][0], "Food, Drink")
		}
	})
	t.Run("doubled quote escape", func(t *testing.T) {
		rows := SplitRows(`"say ""hi""",1`)
		if rows[0][0] != `say "hi"` {
			t.Errorf("cell = %q", rows[0][0])
		}
	})
}

func TestCellAt_OutOfRange(t *testing.T) {
	row := []string{"a", "b"}
	if got := cellAt(row, 5); got != "" {
		t.Errorf("cellAt out of range = %q, want empty", got)
	}
	if got := cellAt(row, -1); got != "" {
		t.Errorf("cellAt(-1) = %q, want empty", got)
	}
}

func TestIsBlankRow(t *testing.T) {
	if !isBlankRow([]string{"", "  ", "\t"}) {
		t.Error("whitespace-only row should be blank")
	}
	if isBlankRow([]string{"", "x"}) {
		t.Error("row with content should not be blank")
	}
}
