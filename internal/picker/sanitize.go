package picker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches ANSI escape sequences that could leak into result
// rows from pasted answers or file excerpts: CSI (SGR etc.), OSC
// (terminated by ST or BEL), charset designations, and other two-byte
// escapes.
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`|` +
	`[#()*+\-./][A-Za-z0-9]` +
	`)`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// ValidateUTF8 replaces invalid UTF-8 byte sequences with the Unicode
// replacement character (U+FFFD). File excerpts come from arbitrary
// uploads and are not guaranteed to be valid UTF-8.
func ValidateUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++
		} else {
			b.WriteRune(r)
			i += size
		}
	}
	return b.String()
}

// MiddleTruncate truncates a string in the middle with an ellipsis if
// its display width exceeds maxWidth. It is display-width-aware,
// correctly handling CJK characters and emoji that occupy two columns.
//
// If maxWidth < 3 (minimum for "x...x"), the string is simply
// truncated from the right to fit maxWidth.
func MiddleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	sw := runewidth.StringWidth(s)
	if sw <= maxWidth {
		return s
	}

	const ellipsis = "…"
	const ellipsisWidth = 1

	if maxWidth < 3 {
		return runewidthTruncate(s, maxWidth)
	}

	// Split available width between head and tail around the ellipsis.
	// The head gets the extra column when the split is uneven.
	remaining := maxWidth - ellipsisWidth
	headWidth := (remaining + 1) / 2
	tailWidth := remaining / 2

	return runewidthTruncate(s, headWidth) + ellipsis + runewidthTruncateRight(s, tailWidth)
}

// runewidthTruncate returns the longest prefix of s whose display
// width does not exceed maxWidth.
func runewidthTruncate(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// runewidthTruncateRight returns the longest suffix of s whose display
// width does not exceed maxWidth.
func runewidthTruncateRight(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			return string(runes[i+1:])
		}
		w += rw
	}
	return s
}
