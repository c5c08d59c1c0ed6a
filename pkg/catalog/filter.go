package catalog

import "strings"

// Query is a set of optional predicates over catalog entries. All set
// predicates must hold (conjunction); zero-valued fields impose no
// constraint.
type Query struct {
	Layer            Layer  `json:"layer,omitempty"`
	Category         string `json:"category,omitempty"`
	DateFrom         string `json:"date_from,omitempty"` // inclusive "YYYY/MM/DD"
	DateTo           string `json:"date_to,omitempty"`   // inclusive
	FilenameContains string `json:"filename_contains,omitempty"`
}

// Match reports whether the entry satisfies every set predicate.
func (q Query) Match(e Entry) bool {
	if q.Layer != "" && e.Layer != q.Layer {
		return false
	}
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if q.DateFrom != "" && e.Date < q.DateFrom {
		return false
	}
	if q.DateTo != "" && e.Date > q.DateTo {
		return false
	}
	if q.FilenameContains != "" && !strings.Contains(e.Filename, q.FilenameContains) {
		return false
	}
	return true
}

// Filter returns the entries satisfying the query in their original order.
// The input slice is never modified or re-sorted.
func Filter(entries []Entry, q Query) []Entry {
	var out []Entry
	for _, e := range entries {
		if q.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
