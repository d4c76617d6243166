package matcher

import (
	"fmt"
	"strings"
)

// EmptyQueryPolicy decides what Search returns when the query holds no terms.
type EmptyQueryPolicy int

const (
	// ShowAll returns every item unfiltered. This is the home-screen
	// behaviour: an empty search box shows the whole catalog.
	ShowAll EmptyQueryPolicy = iota
	// ShowNone returns no items.
	ShowNone
)

func (e EmptyQueryPolicy) String() string {
	switch e {
	case ShowNone:
		return "none"
	default:
		return "all"
	}
}

// ParseEmptyQueryPolicy parses "all" or "none". An empty string selects ShowAll.
func ParseEmptyQueryPolicy(s string) (EmptyQueryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ShowAll, nil
	case "none":
		return ShowNone, nil
	default:
		return ShowAll, fmt.Errorf("unknown empty query policy %q", s)
	}
}

// Search returns the items whose ingredients match at least one term of raw,
// under the default match policy.
func Search[T any](items []T, raw string, ingredients func(T) string, empty EmptyQueryPolicy) []T {
	return SearchWith(defaultPolicy, items, raw, ingredients, empty)
}

// SearchWith is Search with an explicit match policy.
func SearchWith[T any](p Policy, items []T, raw string, ingredients func(T) string, empty EmptyQueryPolicy) []T {
	return SearchTerms(p, items, Tokenize(raw), ingredients, empty)
}

// SearchTerms filters items by an already tokenized term set. The result is a
// new slice in input order; items is never modified.
func SearchTerms[T any](p Policy, items []T, terms []string, ingredients func(T) string, empty EmptyQueryPolicy) []T {
	if len(terms) == 0 {
		if empty == ShowNone {
			return []T{}
		}
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if p.MatchesAny(ingredients(item), terms) {
			out = append(out, item)
		}
	}
	return out
}
