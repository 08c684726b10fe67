// Package search implements the unified search engine: free-text
// matching, relevance scoring, per-entity filter predicates, result
// sorting and top-K selection, and timeline windowing. Every function
// is a pure computation over its arguments; caller slices are never
// mutated.
package search

import (
	"strings"

	"github.com/runger/trove/internal/query"
)

// MatchesQuery reports whether the combined text of parts satisfies q.
// Non-empty parts are joined with newlines and lowercased, then:
// a phrase hit (q.Normalized as substring) matches; failing that,
// a query with tokens matches iff every token is a substring. A
// token-less query (verbatim) has no per-token fallback.
func MatchesQuery(parts []string, q query.NormalizedQuery) bool {
	return MatchesQueryLowered(joinLowered(parts), q)
}

// MatchesQueryLowered is MatchesQuery for text that the caller has
// already joined and lowercased. It must agree with MatchesQuery for
// identically prepared input.
func MatchesQueryLowered(lowered string, q query.NormalizedQuery) bool {
	if strings.Contains(lowered, q.Normalized) {
		return true
	}
	if len(q.Tokens) == 0 {
		return false
	}
	for _, tok := range q.Tokens {
		if !strings.Contains(lowered, tok) {
			return false
		}
	}
	return true
}

// joinLowered joins non-empty parts with newline separators and
// lowercases the result.
func joinLowered(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p)
	}
	return strings.ToLower(b.String())
}
