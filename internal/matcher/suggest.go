package matcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a 0.0–1.0 score between two strings:
// 1.0 - distance/max(len(a), len(b)).
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// Vocabulary collects the distinct ingredient words found in texts, sorted.
// Words without a letter (quantities, fractions) are skipped.
func Vocabulary(texts ...string) []string {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, line := range splitLines(text) {
			for _, w := range defaultPolicy.lineWords(line) {
				if !hasLetter(w) {
					continue
				}
				seen[w] = struct{}{}
			}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Suggest returns up to limit vocabulary words that look like a misspelling
// of term, best match first. Exact matches are never suggested.
func Suggest(vocabulary []string, term string, threshold float64, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		word  string
		score float64
	}
	var candidates []scored
	for _, w := range vocabulary {
		if w == term {
			continue
		}
		if s := Similarity(term, w); s >= threshold {
			candidates = append(candidates, scored{word: w, score: s})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].word < candidates[j].word
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
