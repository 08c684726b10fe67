package query

import "strings"

// NormalizedQuery is the matching form of a free-text query.
// Normalized is the trimmed, lowercased, whitespace-collapsed text;
// Tokens is the de-duplicated word list in first-seen order.
// An empty Normalized always carries empty Tokens.
type NormalizedQuery struct {
	Normalized string
	Tokens     []string
}

// IsEmpty reports whether the query carries no search text at all.
func (q NormalizedQuery) IsEmpty() bool {
	return q.Normalized == "" && len(q.Tokens) == 0
}

// NormalizeQuery lowercases and trims raw, collapses internal
// whitespace runs to single spaces, and splits the result into
// de-duplicated tokens preserving first-seen order.
func NormalizeQuery(raw string) NormalizedQuery {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return NormalizedQuery{}
	}

	var tokens []string
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return NormalizedQuery{
		Normalized: strings.Join(fields, " "),
		Tokens:     tokens,
	}
}
