// Package query implements the unified search query language:
// whitespace tokenization with quoted phrases, key:value operator
// parsing with negation, and free-text normalization.
package query

import (
	"strings"
	"unicode"
)

// TokenizeQuery splits a raw query string into tokens. Double-quoted
// spans keep their internal whitespace and the quotes are stripped;
// a backslash before a double quote escapes it into a literal quote.
//
// If the string contains an odd number of unescaped double quotes the
// quote is unterminated, and quote-aware splitting would swallow the
// rest of the query into one token. In that case we fall back to plain
// whitespace splitting so later tokens still parse.
func TokenizeQuery(raw string) []string {
	if countUnescapedQuotes(raw)%2 != 0 {
		return strings.Fields(raw)
	}

	var tokens []string
	var current strings.Builder
	inQuote := false

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			i++
		case r == '"':
			inQuote = !inQuote
		case unicode.IsSpace(r) && !inQuote:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
			}
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// countUnescapedQuotes counts double quotes not preceded by a backslash.
func countUnescapedQuotes(raw string) int {
	count := 0
	prevBackslash := false
	for _, r := range raw {
		if r == '"' && !prevBackslash {
			count++
		}
		prevBackslash = r == '\\'
	}
	return count
}
