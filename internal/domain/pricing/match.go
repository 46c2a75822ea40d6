package pricing

import (
	"strings"
)

// Matcher resolves a recorded expense material name against a pool of
// budgeted material names. Implementations return the index of the first
// matching pool entry. The default is heuristic; callers may swap in a
// stricter or fuzzy implementation without touching the allocation math.
type Matcher interface {
	Match(candidate string, pool []string) (int, bool)
}

// HeuristicMatcher matches names in three passes:
//  1. exact match, case-insensitive
//  2. substring containment in either direction (minimum 3 characters)
//  3. token overlap: at least 2 shared tokens of length >= 3,
//     or all of them when the candidate has fewer than 2 such tokens
//
// The first pool entry that satisfies a pass wins.
type HeuristicMatcher struct{}

var _ Matcher = HeuristicMatcher{}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nameTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '_' || r == '/' || r == ','
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 3 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Match implements Matcher.
func (HeuristicMatcher) Match(candidate string, pool []string) (int, bool) {
	cand := normalizeName(candidate)
	if cand == "" {
		return 0, false
	}

	// Pass 1: exact
	for i, p := range pool {
		if cand == normalizeName(p) {
			return i, true
		}
	}

	// Pass 2: substring containment, either direction
	for i, p := range pool {
		entry := normalizeName(p)
		if entry == "" {
			continue
		}
		if len(cand) >= 3 && strings.Contains(entry, cand) {
			return i, true
		}
		if len(entry) >= 3 && strings.Contains(cand, entry) {
			return i, true
		}
	}

	// Pass 3: token overlap
	candTokens := nameTokens(cand)
	if len(candTokens) == 0 {
		return 0, false
	}
	need := 2
	if len(candTokens) < need {
		need = len(candTokens)
	}
	for i, p := range pool {
		entryTokens := nameTokens(normalizeName(p))
		shared := 0
		for _, ct := range candTokens {
			for _, et := range entryTokens {
				if ct == et {
					shared++
					break
				}
			}
		}
		if shared >= need {
			return i, true
		}
	}

	return 0, false
}
