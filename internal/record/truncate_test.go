package record

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateShortTextUnchanged(t *testing.T) {
	s := "short\nabstract with a newline"
	if got := Truncate(s, 2000); got != s {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestTruncateAtWordBoundary(t *testing.T) {
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	var b strings.Builder
	for i := 0; utf8.RuneCountInString(b.String()) < 5000; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(words[i%len(words)])
	}
	s := b.String()

	got := Truncate(s, MaxAbstractLength)

	if n := utf8.RuneCountInString(got); n > MaxAbstractLength {
		t.Fatalf("result has %d characters, limit is %d", n, MaxAbstractLength)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("expected ellipsis suffix, got ...%q", got[len(got)-10:])
	}

	head := strings.TrimSuffix(got, Ellipsis)
	if !strings.HasPrefix(s, head) {
		t.Fatal("result is not a prefix of the input")
	}
	if next := s[len(head)]; next != ' ' {
		t.Errorf("cut mid-word: next input byte is %q", next)
	}
	if utf8.RuneCountInString(head) < MaxAbstractLength-20 {
		t.Errorf("cut too early: %d characters kept", utf8.RuneCountInString(head))
	}
}

func TestTruncateSmallLimit(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "one two three", limit: 9, want: "one two…"},
		{in: "one two three", limit: 8, want: "one two…"},
		{in: "one two three", limit: 7, want: "one…"},
		{in: "one\ntwo three", limit: 9, want: "one two…"},
		{in: "supercalifragilistic", limit: 6, want: "super…"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

// Combining marks and zero-width characters take no display width but still
// count against the limit.
func TestTruncateCountsRunes(t *testing.T) {
	tests := []struct {
		name string
		word string
	}{
		{name: "decomposed accents", word: "cafe\u0301"},
		{name: "zero-width space", word: "a\u200bb"},
		{name: "combining only", word: "e\u0301\u0301\u0301"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := strings.TrimSpace(strings.Repeat(tt.word+" ", 1500))

			got := Truncate(s, MaxAbstractLength)

			if n := utf8.RuneCountInString(got); n > MaxAbstractLength {
				t.Fatalf("result has %d characters, limit is %d", n, MaxAbstractLength)
			}
			head := strings.TrimSuffix(got, Ellipsis)
			if head == got {
				t.Fatal("expected ellipsis suffix")
			}
			if !strings.HasPrefix(s, head) {
				t.Fatal("result is not a prefix of the input")
			}
			if next := s[len(head)]; next != ' ' {
				t.Errorf("cut mid-word: next input byte is %q", next)
			}
			if utf8.RuneCountInString(head) < MaxAbstractLength-2*utf8.RuneCountInString(tt.word) {
				t.Errorf("cut too early: %d characters kept", utf8.RuneCountInString(head))
			}
		})
	}
}

func TestCutAtWord(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "one two three", n: 7, want: "one two"},
		{in: "one two three", n: 6, want: "one"},
		{in: "one two three", n: 8, want: "one two"},
		{in: "abcdefgh", n: 3, want: "abc"},
		{in: "e\u0301 e\u0301e\u0301", n: 4, want: "e\u0301"},
	}

	for _, tt := range tests {
		if got := cutAtWord(tt.in, tt.n); got != tt.want {
			t.Errorf("cutAtWord(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
