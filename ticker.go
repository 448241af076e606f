package sheetpulse

import "strings"

// tickerAliases resolves common full names to their canonical symbol.
// Matched exactly first, then by prefix.
var tickerAliases = map[string]string{
	"BITCOIN":  "BTC",
	"ETHEREUM": "ETH",
	"SOLANA":   "SOL",
	"CARDANO":  "ADA",
	"DOGECOIN": "DOGE",
	"RIPPLE":   "XRP",
	"LITECOIN": "LTC",
	"POLKADOT": "DOT",
}

// cryptoTickers are the symbols recognized as cryptocurrencies when
// synthesizing holdings from trade history.
var cryptoTickers = map[string]bool{
	"BTC": true, "ETH": true, "SOL": true, "ADA": true,
	"DOGE": true, "XRP": true, "LTC": true, "DOT": true,
	"AVAX": true, "LINK": true,
}

// NormalizeTicker canonicalizes a security symbol so it can be used as a
// reliable join key between sheet-declared holdings and trade history:
// uppercase, parenthetical exchange annotations stripped, exchange suffix
// after '-', '.' or '/' stripped when a non-empty prefix remains, then
// known full-name aliases resolved by exact and prefix match.
func NormalizeTicker(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return UnknownTicker
	}

	// strip "(NASDAQ)" style annotations
	if i := strings.Index(t, "("); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}

	for _, sep := range []string{"-", ".", "/"} {
		if i := strings.Index(t, sep); i > 0 {
			t = t[:i]
			break
		}
	}

	if alias, ok := tickerAliases[t]; ok {
		return alias
	}
	for name, alias := range tickerAliases {
		if strings.HasPrefix(t, name) {
			return alias
		}
	}
	if t == "" {
		return UnknownTicker
	}
	return t
}

// IsCryptoTicker reports whether the normalized ticker is a known
// cryptocurrency symbol.
func IsCryptoTicker(ticker string) bool { return cryptoTickers[ticker] }
