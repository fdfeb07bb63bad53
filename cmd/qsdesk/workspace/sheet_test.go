package workspace

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPadFillsShortValues(t *testing.T) {
	t.Parallel()

	got := pad("row-3", 8)
	if got != "row-3   " {
		t.Errorf("pad = %q", got)
	}
}

// Truncation must cut on rune boundaries: a multibyte rune at the cut point
// may never be split into invalid bytes, and the cell stays exactly as wide
// as requested.
func TestPadTruncatesOnRuneBoundaries(t *testing.T) {
	t.Parallel()

	got := pad("Bétonnage général — lot 4", 10)
	if !utf8.ValidString(got) {
		t.Fatalf("pad produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("pad width = %d runes, want 10 (%q)", n, got)
	}
	if !strings.HasSuffix(strings.TrimRight(got, " "), "…") {
		t.Errorf("truncated cell missing ellipsis: %q", got)
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	got := padRight("7,200.00", 13)
	if got != "    7,200.00 " {
		t.Errorf("padRight = %q", got)
	}
	if utf8.RuneCountInString(got) != 13 {
		t.Errorf("padRight width = %d", utf8.RuneCountInString(got))
	}
}
