package matcher

import "strings"

var defaultPolicy = DefaultPolicy()

// Matches reports whether term occurs as a real ingredient in ingredientsText
// under the default policy.
//
// Terms are expected to come from Tokenize, which never yields an empty
// term; an empty or blank term never matches.
func Matches(ingredientsText, term string) bool {
	return defaultPolicy.Matches(ingredientsText, term)
}

// Matches reports whether term occurs as a whole word on some line of
// ingredientsText without being directly followed by a banned qualifier.
// The term is compared lowercased with surrounding whitespace removed.
// A rejected occurrence does not end the scan: later words and lines are
// still considered.
func (p Policy) Matches(ingredientsText, term string) bool {
	if strings.TrimSpace(ingredientsText) == "" {
		return false
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}

	for _, line := range splitLines(ingredientsText) {
		// cheap reject before tokenizing the line
		if !strings.Contains(line, term) {
			continue
		}
		words := p.lineWords(line)
		for i, word := range words {
			if word != term {
				continue
			}
			if i+1 < len(words) && p.IsBanned(words[i+1]) {
				continue
			}
			return true
		}
	}
	return false
}

// MatchesAny reports whether any of terms matches ingredientsText.
func (p Policy) MatchesAny(ingredientsText string, terms []string) bool {
	for _, term := range terms {
		if p.Matches(ingredientsText, term) {
			return true
		}
	}
	return false
}

// splitLines returns the lowercased, trimmed, non-blank lines of text.
func splitLines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// lineWords splits a normalized line on spaces and strips the policy's
// punctuation from both ends of each word. Words that are pure punctuation
// stay in place as empty strings so that adjacency is preserved.
func (p Policy) lineWords(line string) []string {
	parts := strings.Split(line, " ")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		words = append(words, strings.Trim(part, p.Punctuation))
	}
	return words
}
