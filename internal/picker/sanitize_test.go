package picker

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"sgr color", "\x1b[31mred\x1b[0m", "red"},
		{"cursor movement", "\x1b[2Aup", "up"},
		{"osc title bel", "\x1b]0;title\x07text", "text"},
		{"osc title st", "\x1b]0;title\x1b\\text", "text"},
		{"charset", "\x1b(Bascii", "ascii"},
		{"mixed", "a\x1b[1mb\x1b[0mc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateUTF8(t *testing.T) {
	t.Parallel()

	if got := ValidateUTF8("héllo 世界"); got != "héllo 世界" {
		t.Errorf("valid string changed: %q", got)
	}

	got := ValidateUTF8("ok\xff\xfeend")
	if !strings.Contains(got, "�") {
		t.Errorf("invalid bytes not replaced: %q", got)
	}
	if !strings.HasPrefix(got, "ok") || !strings.HasSuffix(got, "end") {
		t.Errorf("valid portions lost: %q", got)
	}
}

func TestMiddleTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "12345", 5, "12345"},
		{"truncated middle", "abcdefghij", 7, "abcd…fg"},
		{"zero width", "abc", 0, ""},
		{"tiny width", "abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MiddleTruncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("MiddleTruncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestMiddleTruncate_WideRunes(t *testing.T) {
	t.Parallel()

	// CJK characters occupy two columns; the truncated string's
	// display width must never exceed the budget.
	got := MiddleTruncate("日本語のテキストです", 9)
	if w := runewidth.StringWidth(got); w > 9 {
		t.Errorf("width %d exceeds budget: %q", w, got)
	}
	if !strings.Contains(got, "…") {
		t.Errorf("expected ellipsis in %q", got)
	}
}
