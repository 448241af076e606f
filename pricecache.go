package sheetpulse

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceCache holds recently observed quotes with a fixed time-to-live.
// It is owned and injected by the caller; nothing in this package keeps a
// global one. The cache is not safe for concurrent use.
type PriceCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]priceEntry
}

type priceEntry struct {
	price decimal.Decimal
	at    time.Time
}

// NewPriceCache returns an empty cache whose entries expire after ttl.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]priceEntry),
	}
}

// SetClock replaces the cache's clock. Tests use this to control expiry.
func (c *PriceCache) SetClock(now func() time.Time) { c.now = now }

// Put records a quote for ticker at the current clock time.
func (c *PriceCache) Put(ticker string, price decimal.Decimal) {
	c.entries[ticker] = priceEntry{price: price, at: c.now()}
}

// Get returns the cached quote for ticker, or false when absent or
// older than the ttl. Expired entries are evicted on read.
func (c *PriceCache) Get(ticker string) (decimal.Decimal, bool) {
	e, ok := c.entries[ticker]
	if !ok {
		return decimal.Zero, false
	}
	if c.now().Sub(e.at) > c.ttl {
		delete(c.entries, ticker)
		return decimal.Zero, false
	}
	return e.price, true
}

// Snapshot returns all live entries as a plain quote map, the shape
// HoldingValue consumes.
func (c *PriceCache) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.entries))
	for ticker := range c.entries {
		if p, ok := c.Get(ticker); ok {
			out[ticker] = p
		}
	}
	return out
}
