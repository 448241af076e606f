// Package quotes extracts live prices from pre-fetched JSON payloads of
// quote providers. The dashboard's sheet stores last-known prices; a
// caller that has already fetched a provider response can pass the raw
// body here to overlay fresher figures.
//
// No network access happens in this package.
package quotes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Extract pulls one price out of a JSON payload using a jsonpath
// expression, such as "$.quote.latestPrice" or "$.data[-1:][1]".
func Extract(payload []byte, path string) (decimal.Decimal, error) {
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("parsing quote payload: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("evaluating %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer, keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return fromJSONValue(jval)
}

// ExtractMap pulls a ticker-to-price map out of a payload shaped like
//
//	{"quotes": [{"symbol": "VEQT", "price": 42.17}, ...]}
//
// using jsonpath expressions for the list, the symbol field and the price
// field. Entries whose price cannot be read are skipped, not fatal.
func ExtractMap(payload []byte, listPath, symbolKey, priceKey string) (map[string]decimal.Decimal, error) {
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return nil, fmt.Errorf("parsing quote payload: %w", err)
	}
	jval, err := jsonpath.Get(listPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", listPath, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q does not address a list", listPath)
	}

	out := make(map[string]decimal.Decimal, len(jlist))
	for _, item := range jlist {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		symbol, ok := entry[symbolKey].(string)
		if !ok || symbol == "" {
			continue
		}
		price, err := fromJSONValue(entry[priceKey])
		if err != nil {
			continue
		}
		out[strings.ToUpper(symbol)] = price
	}
	return out, nil
}

// fromJSONValue reads a price from a decoded JSON value. Providers
// sometimes return the value as a string, with commas for decimal
// separators.
func fromJSONValue(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return decimal.Zero, fmt.Errorf("price is an invalid string %q: %w", v, err)
		}
		return decimal.NewFromFloat(f), nil
	default:
		return decimal.Zero, fmt.Errorf("price is neither a float nor a string: %v", jval)
	}
}
