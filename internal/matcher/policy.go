package matcher

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPunctuation is the cutset stripped from both ends of every word in
// an ingredient line before it is compared with a term.
const DefaultPunctuation = ",.;:"

// DefaultBannedQualifiers lists the words that mark a derived product when
// they directly follow an ingredient ("chicken broth", "garlic powder").
var DefaultBannedQualifiers = []string{"broth", "stock", "powder", "bouillon", "cube"}

// Policy controls how ingredient lines are compared with search terms.
type Policy struct {
	BannedQualifiers []string `yaml:"banned_qualifiers"`
	Punctuation      string   `yaml:"punctuation"`

	banned map[string]struct{}
}

// DefaultPolicy returns the built-in matching policy.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultBannedQualifiers, DefaultPunctuation)
}

// NewPolicy builds a policy from an explicit qualifier list and punctuation
// cutset. Qualifiers are compared lowercased.
func NewPolicy(banned []string, punctuation string) Policy {
	p := Policy{
		BannedQualifiers: make([]string, 0, len(banned)),
		Punctuation:      punctuation,
		banned:           make(map[string]struct{}, len(banned)),
	}
	for _, q := range banned {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			continue
		}
		if _, dup := p.banned[q]; dup {
			continue
		}
		p.banned[q] = struct{}{}
		p.BannedQualifiers = append(p.BannedQualifiers, q)
	}
	return p
}

// IsBanned reports whether word invalidates a match it directly follows.
func (p Policy) IsBanned(word string) bool {
	if p.banned == nil {
		// zero Policy or one decoded without NewPolicy
		for _, q := range p.BannedQualifiers {
			if strings.EqualFold(q, word) {
				return true
			}
		}
		return false
	}
	_, ok := p.banned[word]
	return ok
}

// LoadPolicy reads a YAML policy file. A missing file yields DefaultPolicy;
// fields left empty in the file fall back to their defaults.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPolicy(), nil
		}
		return Policy{}, fmt.Errorf("read match policy: %w", err)
	}

	var raw Policy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Policy{}, fmt.Errorf("parse match policy: %w", err)
	}

	banned := raw.BannedQualifiers
	if len(banned) == 0 {
		banned = DefaultBannedQualifiers
	}
	punct := raw.Punctuation
	if punct == "" {
		punct = DefaultPunctuation
	}
	return NewPolicy(banned, punct), nil
}
