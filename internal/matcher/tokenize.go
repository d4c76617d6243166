// Package matcher filters recipes by the ingredients named in a free-text
// grocery list.
//
// A query is tokenized into a set of lowercase terms. A recipe matches when
// any term appears as a whole word in any line of its ingredients text and is
// not directly followed by a banned qualifier, so "chicken" finds
// "1 lb chicken breast" but not "2 cups chicken broth".
package matcher

import "strings"

// Tokenize splits a raw grocery list into distinct lowercase terms. Segments
// are separated by newlines, commas and semicolons, and words within a
// segment by whitespace. Terms keep the order of their first occurrence.
// Blank input yields an empty slice.
func Tokenize(raw string) []string {
	segments := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})

	terms := make([]string, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))
	for _, segment := range segments {
		for _, word := range strings.Fields(segment) {
			term := strings.ToLower(strings.TrimSpace(word))
			if term == "" {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	return terms
}
