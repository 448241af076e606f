package sheetpulse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SplitRows turns raw delimited text into rows of trimmed cells. The
// delimiter is detected from the first non-blank line: tab when present,
// comma otherwise. Quoted segments may contain the delimiter and doubled
// escaped quotes.
func SplitRows(raw string) [][]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	delim := ','
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.ContainsRune(line, '\t') {
			delim = '\t'
		}
		break
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitLine(line, delim))
	}
	return rows
}

// splitLine splits a single line on delim, respecting double quotes.
// Inside a quoted segment a doubled quote is an escaped literal quote.
func splitLine(line string, delim rune) []string {
	var cells []string
	var cell strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}

// isBlankRow reports whether every cell of the row is whitespace.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cellAt returns the trimmed cell at index i, or "" when the row is short
// or the index unresolved (-1).
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// currencyGarbage lists the characters stripped from numeric cells before
// parsing: currency symbols, thousands separators and stray whitespace.
const currencyGarbage = "$€£¥₿, \t '"

// ParseNumber normalizes a messy financial cell into an exact decimal.
// Currency symbols and thousands separators are stripped, a value wrapped
// in parentheses is negative, a trailing percent sign is dropped.
//
// Unparseable input yields zero, never an error: downstream aggregation
// must not have to special-case invalid cells.
func ParseNumber(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencyGarbage, r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// ParseMoney is ParseNumber with a currency attached.
func ParseMoney(raw, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return M(ParseNumber(raw), currency)
}
