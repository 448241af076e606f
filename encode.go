package sheetpulse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the normalized timeline as JSONL, one transaction per
// line, so a dashboard run can be exported and diffed in a git-friendly way.

// jsonTransaction is a specialized struct for JSON round-trips. Money is
// split in two fields because the wire format carries a bare decimal plus a
// currency code.
type jsonTransaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Direction   Direction       `json:"direction"`
}

// EncodeTimeline writes transactions as a stream of JSONL to w, in the order
// given.
func EncodeTimeline(w io.Writer, txs []NormalizedTransaction) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, tx := range txs {
		jt := jsonTransaction{
			ID:          tx.ID,
			Date:        tx.Date,
			Category:    tx.Category,
			Subcategory: tx.Subcategory,
			Amount:      tx.Amount.Amount(),
			Currency:    tx.Amount.Currency(),
			Direction:   tx.Direction,
		}
		if err := enc.Encode(jt); err != nil {
			return fmt.Errorf("could not encode transaction %q: %w", tx.ID, err)
		}
	}
	return bw.Flush()
}

// DecodeTimeline reads a stream of JSONL data from r and decodes each line
// back into a transaction. Empty lines are skipped. A line that is not valid
// JSON is an error, but lenient field parsing still applies, an unparseable
// date degrades to the zero date.
func DecodeTimeline(r io.Reader) ([]NormalizedTransaction, error) {
	var out []NormalizedTransaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jt jsonTransaction
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("could not decode line %q: %w", string(line), err)
		}
		dir := jt.Direction
		if dir != Income {
			dir = Expense
		}
		out = append(out, NormalizedTransaction{
			ID:          jt.ID,
			Date:        jt.Date,
			Category:    jt.Category,
			Subcategory: jt.Subcategory,
			Amount:      M(jt.Amount, jt.Currency),
			Direction:   dir,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read timeline: %w", err)
	}
	return out, nil
}
