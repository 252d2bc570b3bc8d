package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ISODate is the layout of dates written to Notion.
const ISODate = "2006-01-02"

// Layouts tried in order before falling back to natural-language parsing.
// Parts missing from a layout (day, month) default to 1.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006-01",
	"2006/01",
	"2006",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01/2006",
	"1/2006",
	"02.01.2006",
	"2.1.2006",
	"01.2006",
	"1.2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan. 2, 2006",
	"Jan 2 2006 15:04",
	"2 January 2006",
	"2 Jan 2006",
	"2 Jan. 2006",
	"02 January 2006",
	"January, 2006",
	"January 2006",
	"Jan 2006",
	"Jan. 2006",
	"2006 January",
	"2006 Jan",
	"2006, January 2",
	"Monday, January 2, 2006",
	"Mon, 02 Jan 2006",
}

var (
	ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)
	septAbbrev    = regexp.MustCompile(`(?i)\bsept\b`)
	fourDigitYear = regexp.MustCompile(`\b\d{4}\b`)
)

var naturalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseDate parses a free-form Zotero date and returns it as YYYY-MM-DD.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	cleaned := ordinalSuffix.ReplaceAllString(s, "$1")
	cleaned = septAbbrev.ReplaceAllString(cleaned, "Sep")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(ISODate), nil
		}
	}

	r, err := naturalParser.Parse(cleaned, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	if r == nil || !wholeMatch(cleaned, r.Index, r.Text) || !hasYear(cleaned, r.Time.Year()) {
		return "", fmt.Errorf("failed to parse date %q", s)
	}
	return r.Time.Format(ISODate), nil
}

// wholeMatch reports whether the natural-language match spans all of s.
// Anything less means part of the input was ignored.
func wholeMatch(s string, index int, text string) bool {
	return index == 0 && len(strings.TrimSpace(text)) == len(s)
}

// hasYear reports whether year is written out in s. The natural-language
// parser fills missing parts from the current time, which must not leak
// into a publication date.
func hasYear(s string, year int) bool {
	want := strconv.Itoa(year)
	for _, y := range fourDigitYear.FindAllString(s, -1) {
		if y == want {
			return true
		}
	}
	return false
}
