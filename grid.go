package sheetpulse

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Grid ledger parsing: month-by-category cross-tab sheets, categories and
// subcategories as rows, months as columns.

// Subcategory is one data row of a grid ledger. Its Monthly slice is always
// exactly as long as the LedgerData months list.
type Subcategory struct {
	Name    string
	Monthly []decimal.Decimal
	Row     int
}

// Total sums the subcategory's monthly values.
func (s Subcategory) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.Monthly {
		total = total.Add(v)
	}
	return total
}

// Category is a parent grouping of subcategory rows.
type Category struct {
	Name          string
	Subcategories []Subcategory
	Row           int
}

// Total sums the category's subcategory totals.
func (c Category) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.Subcategories {
		total = total.Add(s.Total())
	}
	return total
}

// LedgerData is the parsed cross-tab tree: ordered month labels and the
// category/subcategory rows aligned to them.
type LedgerData struct {
	Months     []string
	Categories []Category
}

// IsEmpty reports whether parsing produced nothing usable.
func (ld LedgerData) IsEmpty() bool { return len(ld.Months) == 0 || len(ld.Categories) == 0 }

// GridVariant selects the terminal condition of the grid parser.
type GridVariant int

const (
	// ExpenseGrid runs to end-of-input and flushes any open category.
	ExpenseGrid GridVariant = iota
	// IncomeGrid stops at the first "Total" label.
	IncomeGrid
)

// gridTitleMarker breaks ties between candidate month-header rows.
const gridTitleMarker = "expense categorie"

// findMonthRow locates the month-label header row: the candidate with the
// most month-like tokens across columns 1..12 wins; on ties a row carrying
// the title marker is preferred, else the first found.
// Returns the row index and the column indices of the month cells, or -1.
func findMonthRow(rows [][]string) (int, []int) {
	best, bestCount := -1, 0
	var bestCols []int
	maxScan := gridHeaderScan
	if maxScan > len(rows) {
		maxScan = len(rows)
	}
	for i := 0; i < maxScan; i++ {
		row := rows[i]
		var cols []int
		for c := 1; c <= 12 && c < len(row); c++ {
			if monthFromLabel(row[c]) != 0 {
				cols = append(cols, c)
			}
		}
		switch {
		case len(cols) > bestCount:
			best, bestCount, bestCols = i, len(cols), cols
		case len(cols) == bestCount && bestCount > 0 &&
			strings.Contains(strings.ToLower(cellAt(row, 0)), gridTitleMarker) &&
			!strings.Contains(strings.ToLower(cellAt(rows[best], 0)), gridTitleMarker):
			best, bestCols = i, cols
		}
	}
	return best, bestCols
}

// ParseGridLedger parses a cross-tab income or expense sheet. Walking the
// rows after the month-header row:
//
//   - a labeled row whose numeric cells are all zero opens a new parent
//     category, flushing any in-progress one;
//   - a labeled row with at least one non-zero cell is a subcategory data
//     row, appended to the open category, or synthesized as a standalone
//     category when none is open;
//   - a row with an empty label closes the open category.
//
// Labels that would be unsafe dynamic property keys are silently skipped.
// Malformed cells degrade to zero; the worst outcome is an empty tree.
func ParseGridLedger(raw string, variant GridVariant) LedgerData {
	rows := SplitRows(raw)
	headerRow, monthCols := findMonthRow(rows)
	if headerRow < 0 || len(monthCols) == 0 {
		return LedgerData{}
	}

	months := make([]string, len(monthCols))
	for i, c := range monthCols {
		months[i] = cellAt(rows[headerRow], c)
	}

	ld := LedgerData{Months: months}
	var open *Category

	flush := func() {
		if open != nil && len(open.Subcategories) > 0 {
			ld.Categories = append(ld.Categories, *open)
		}
		open = nil
	}

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		label := cellAt(row, 0)

		if label == "" {
			flush()
			continue
		}
		if variant == IncomeGrid && strings.HasPrefix(normalizeKey(label), "total") {
			break
		}
		if isReservedLabel(label) {
			Log.Debug().Int("row", i).Str("label", label).Msg("reserved label skipped")
			continue
		}

		values := make([]decimal.Decimal, len(monthCols))
		allZero := true
		for j, c := range monthCols {
			values[j] = ParseNumber(cellAt(row, c))
			if !values[j].IsZero() {
				allZero = false
			}
		}

		if allZero {
			// category boundary
			flush()
			open = &Category{Name: label, Row: i}
			continue
		}

		sub := Subcategory{Name: label, Monthly: values, Row: i}
		if open != nil {
			open.Subcategories = append(open.Subcategories, sub)
			continue
		}
		// standalone data row outside any category
		ld.Categories = append(ld.Categories, Category{
			Name:          label,
			Subcategories: []Subcategory{sub},
			Row:           i,
		})
	}
	flush()
	return ld
}

// ParseExpenseGrid parses the detailed-expenses cross-tab.
func ParseExpenseGrid(raw string) LedgerData { return ParseGridLedger(raw, ExpenseGrid) }

// ParseIncomeGrid parses the income cross-tab.
func ParseIncomeGrid(raw string) LedgerData { return ParseGridLedger(raw, IncomeGrid) }

// monthDate resolves a grid month label to the first day of its month.
// Labels carrying a year ("Jan-24") are authoritative; bare month names
// fall back to the provided year.
func monthDate(label string, fallbackYear int) (Date, bool) {
	if d, ok := ParseFlexibleDate(label); ok {
		return NewDate(d.Year(), d.Month(), 1), true
	}
	if m := monthFromLabel(label); m != 0 {
		return NewDate(fallbackYear, m, 1), true
	}
	return Date{}, false
}

// Flatten converts a grid ledger tree into the unified timeline. Each
// non-zero monthly cell becomes one NormalizedTransaction dated the first
// of its month; amounts are unsigned, the direction is the caller's.
func Flatten(ld LedgerData, dir Direction, fallbackYear int) []NormalizedTransaction {
	var out []NormalizedTransaction
	for _, cat := range ld.Categories {
		for _, sub := range cat.Subcategories {
			for i, v := range sub.Monthly {
				if v.IsZero() || i >= len(ld.Months) {
					continue
				}
				on, ok := monthDate(ld.Months[i], fallbackYear)
				if !ok {
					continue
				}
				out = append(out, NormalizedTransaction{
					ID:          uuid.NewString(),
					Date:        on,
					Category:    cat.Name,
					Subcategory: sub.Name,
					Amount:      M(v.Abs(), DefaultCurrency),
					Direction:   dir,
				})
			}
		}
	}
	return out
}
