package sheetpulse

import (
	"iter"

	"github.com/shopspring/decimal"
)

// reservedLabels are dynamic keys that must never become property names
// when the flattened data is handed to a charting collaborator. They are
// rejected at insertion, by construction, instead of being filtered at
// every call site. Keys are in normalizeKey form, so "__proto__" and
// "Proto" both hit the "proto" entry.
var reservedLabels = map[string]bool{
	"proto":                true,
	"constructor":          true,
	"prototype":            true,
	"hasownproperty":       true,
	"definegetter":         true,
	"definesetter":         true,
	"lookupgetter":         true,
	"lookupsetter":         true,
	"valueof":              true,
	"tostring":             true,
	"tolocalestring":       true,
	"isprototypeof":        true,
	"propertyisenumerable": true,
}

// isReservedLabel reports whether a user-entered label is an unsafe
// dynamic property key.
func isReservedLabel(label string) bool {
	return reservedLabels[normalizeKey(label)]
}

// LabelMap is an insertion-ordered label → decimal map whose Add method
// silently rejects reserved keys. It is the grouping primitive for
// aggregation results keyed by user-entered labels.
type LabelMap struct {
	keys   []string
	values map[string]decimal.Decimal
	counts map[string]int
}

// NewLabelMap creates an empty LabelMap.
func NewLabelMap() *LabelMap {
	return &LabelMap{
		values: make(map[string]decimal.Decimal),
		counts: make(map[string]int),
	}
}

// Add accumulates value under label and returns true, or returns false for
// a reserved or empty label, which is dropped without error.
func (m *LabelMap) Add(label string, value decimal.Decimal) bool {
	if label == "" || isReservedLabel(label) {
		return false
	}
	if _, ok := m.values[label]; !ok {
		m.keys = append(m.keys, label)
	}
	m.values[label] = m.values[label].Add(value)
	m.counts[label]++
	return true
}

// Get returns the accumulated value for label.
func (m *LabelMap) Get(label string) (decimal.Decimal, bool) {
	v, ok := m.values[label]
	return v, ok
}

// Count returns how many times label was added.
func (m *LabelMap) Count(label string) int { return m.counts[label] }

// Len returns the number of distinct labels.
func (m *LabelMap) Len() int { return len(m.keys) }

// All yields label/value pairs in insertion order.
func (m *LabelMap) All() iter.Seq2[string, decimal.Decimal] {
	return func(yield func(string, decimal.Decimal) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}
