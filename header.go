package sheetpulse

import "strings"

// How deep to scan for a header row. Flat sheets have their header near the
// top; grid sheets can bury the month row under banners and spacer rows.
const (
	flatHeaderScan = 15
	gridHeaderScan = 50
)

// Keyword tables per record type, used to score candidate header rows.
var (
	assetKeywords        = []string{"asset", "name", "type", "value", "category", "currency"}
	holdingKeywords      = []string{"ticker", "symbol", "quantity", "shares", "cost", "price", "account"}
	tradeKeywords        = []string{"date", "ticker", "symbol", "action", "side", "quantity", "price", "total"}
	subscriptionKeywords = []string{"subscription", "service", "amount", "renewal", "frequency", "billing"}
	accountKeywords      = []string{"account", "bank", "institution", "balance", "type"}
	netWorthKeywords     = []string{"date", "net worth", "networth", "total", "value"}
	debtKeywords         = []string{"debt", "loan", "balance", "rate", "payment", "owed"}
	taxKeywords          = []string{"year", "income", "tax", "paid", "owed", "refund"}
)

// normalizeKey lowercases a header or candidate key and strips everything
// that is not a letter or digit, so "Avg. Cost " and "avgcost" compare equal.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ScoreHeaderRow scans up to maxScan leading rows and returns the index of
// the most plausible header row for a record type described by its keyword
// table. A row qualifies when it has at least two non-empty cells and at
// least one cell containing a keyword; among qualifiers the row with the
// most keyword hits wins, first found on ties.
//
// When nothing qualifies it falls back to the first non-blank row, so that
// an atypical sheet still yields some output. Returns -1 only when every
// row is blank.
func ScoreHeaderRow(rows [][]string, keywords []string, maxScan int) int {
	if maxScan > len(rows) {
		maxScan = len(rows)
	}

	normKeys := make([]string, len(keywords))
	for i, k := range keywords {
		normKeys[i] = normalizeKey(k)
	}

	best, bestScore := -1, 0
	for i := 0; i < maxScan; i++ {
		row := rows[i]
		nonEmpty := 0
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				nonEmpty++
			}
		}
		if nonEmpty < 2 {
			continue
		}
		score := 0
		for _, c := range row {
			nc := normalizeKey(c)
			if nc == "" {
				continue
			}
			for _, k := range normKeys {
				if k != "" && strings.Contains(nc, k) {
					score++
					break
				}
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return best
	}

	// fallback: first non-blank row.
	for i, row := range rows {
		if !isBlankRow(row) {
			return i
		}
	}
	return -1
}

// ResolveColumn fuzzy-matches a semantic field against the header row. All
// headers and candidate keys are normalized; an exact match anywhere wins
// over a substring match, even when an earlier candidate key would have
// matched by substring on a different header. Returns -1 when nothing
// matches across all candidates.
func ResolveColumn(headers []string, candidates ...string) int {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = normalizeKey(h)
	}

	// phase 1: exact
	for _, cand := range candidates {
		nc := normalizeKey(cand)
		for i, h := range norm {
			if h != "" && h == nc {
				return i
			}
		}
	}
	// phase 2: substring
	for _, cand := range candidates {
		nc := normalizeKey(cand)
		if nc == "" {
			continue
		}
		for i, h := range norm {
			if h != "" && strings.Contains(h, nc) {
				return i
			}
		}
	}
	return -1
}
