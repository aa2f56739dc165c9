package viewstate

import (
	"slices"
	"strings"
)

// Criteria is the ephemeral filter state of a panel.
type Criteria struct {
	Query      string            `json:"query,omitempty"`
	Selectors  map[string]string `json:"selectors,omitempty"`
	SortBy     string            `json:"sort_by,omitempty"`
	Descending bool              `json:"descending,omitempty"`
}

// With returns a copy of c with the selector set. An empty value clears it.
func (c Criteria) With(field, value string) Criteria {
	out := c
	out.Selectors = make(map[string]string, len(c.Selectors)+1)
	for k, v := range c.Selectors {
		out.Selectors[k] = v
	}
	if value == "" {
		delete(out.Selectors, field)
	} else {
		out.Selectors[field] = value
	}
	return out
}

// Schema describes how a record type is searched, selected and sorted.
type Schema[T any] struct {
	// Searchable returns the text fields matched by the free-text query.
	Searchable func(T) []string
	// Fields maps categorical selector names to the record value they compare.
	Fields map[string]func(T) string
	// Sorts maps sort keys to ascending comparators.
	Sorts map[string]func(a, b T) int
}

// Apply returns the records matching c, in their original relative order
// unless a known sort key is set. The input slice is never modified.
func Apply[T any](records []T, schema Schema[T], c Criteria) []T {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !matchesQuery(rec, schema, query) {
			continue
		}
		if !matchesSelectors(rec, schema, c.Selectors) {
			continue
		}
		out = append(out, rec)
	}

	cmp, ok := schema.Sorts[c.SortBy]
	if c.SortBy == "" || !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if c.Descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

// Count tallies records per value of a selector field.
func Count[T any](records []T, schema Schema[T], field string) map[string]int {
	get, ok := schema.Fields[field]
	counts := make(map[string]int)
	if !ok {
		return counts
	}
	for _, rec := range records {
		counts[get(rec)]++
	}
	return counts
}

func matchesQuery[T any](rec T, schema Schema[T], query string) bool {
	if query == "" || schema.Searchable == nil {
		return true
	}
	for _, field := range schema.Searchable(rec) {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesSelectors[T any](rec T, schema Schema[T], selectors map[string]string) bool {
	for name, want := range selectors {
		if want == "" {
			continue
		}
		get, ok := schema.Fields[name]
		if !ok {
			return false
		}
		if !strings.EqualFold(get(rec), want) {
			return false
		}
	}
	return true
}
