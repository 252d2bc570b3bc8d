package record

import (
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
)

// Ellipsis marks shortened text.
const Ellipsis = "…"

// Truncate shortens s to at most limit characters (runes), cutting at the
// last word boundary that fits and appending Ellipsis. Newlines in shortened
// text are folded into spaces. A single word longer than the limit is cut
// hard.
//
// The word wrapper measures display width, which is smaller than the rune
// count for combining marks and zero-width characters, so its cut is only a
// first guess that is then shortened by runes.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	room := limit - utf8.RuneCountInString(Ellipsis)
	if room <= 0 {
		return cutRunes(Ellipsis, limit)
	}

	ww := wordwrap.NewWriter(room)
	ww.KeepNewlines = false
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(s))
	_ = ww.Close()

	head, _, _ := strings.Cut(ww.String(), "\n")
	head = strings.TrimRight(head, " \t")
	if utf8.RuneCountInString(head) > room {
		head = cutAtWord(head, room)
	}
	return head + Ellipsis
}

// cutAtWord returns the longest prefix of s with at most n runes that ends
// at a word boundary, or the first n runes when s has no space early enough.
func cutAtWord(s string, n int) string {
	prefix := cutRunes(s, n)
	if rest := s[len(prefix):]; rest == "" || rest[0] == ' ' || rest[0] == '\t' {
		return strings.TrimRight(prefix, " \t")
	}
	if i := strings.LastIndexAny(prefix, " \t"); i > 0 {
		return strings.TrimRight(prefix[:i], " \t")
	}
	return prefix
}

// cutRunes returns the first n runes of s.
func cutRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
