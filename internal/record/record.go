package record

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/steveyegge/zotion/internal/notion"
	"github.com/steveyegge/zotion/internal/zotero"
)

// Notion column names.
const (
	PropCitationKey     = "Citation Key"
	PropTitle           = "Title"
	PropPublicationDate = "Publication Date"
	PropAuthors         = "Authors"
	PropTags            = "Tags"
	PropZoteroKey       = "Zotero: Key"
	PropZoteroVersion   = "Zotero: Version"
	PropDateModified    = "Zotero: Date Modified"
	PropDateAdded       = "Zotero: Date Added"
	PropLink            = "Zotero: Link"
	PropURL             = "URL"
)

// AbstractHeading is the heading placed above the abstract paragraph.
const AbstractHeading = "Abstract"

// MaxAbstractLength is the longest abstract paragraph written, in characters.
// Notion rejects longer rich text content.
const MaxAbstractLength = 2000

// Tags the Zotero tablet workflow manages; they never reach Notion.
var reservedTags = map[string]bool{
	"_tablet":          true,
	"_tablet_modified": true,
}

var citationKeyRegexp = regexp.MustCompile(`Citation Key: (\S*)`)

// Record is the full set of Notion properties for one item. Pointer fields
// are omitted from the page when nil.
type Record struct {
	CitationKey     *string
	Title           string
	PublicationDate *string
	Authors         []string
	Tags            []string
	ZoteroKey       string
	ZoteroVersion   int
	DateModified    string
	DateAdded       string
	Link            string
	URL             *string

	// Blocks are only sent when the page is created.
	Blocks []notion.Block
}

// Properties renders r in Notion wire form. Every non-optional column is
// present so that an update overwrites the page wholesale.
func (r *Record) Properties() notion.Properties {
	props := notion.Properties{
		PropTitle:         notion.RichTextProperty(r.Title),
		PropAuthors:       notion.MultiSelectProperty(r.Authors...),
		PropTags:          notion.MultiSelectProperty(r.Tags...),
		PropZoteroKey:     notion.RichTextProperty(r.ZoteroKey),
		PropZoteroVersion: notion.NumberProperty(float64(r.ZoteroVersion)),
		PropDateModified:  notion.DateProperty(r.DateModified),
		PropDateAdded:     notion.DateProperty(r.DateAdded),
		PropLink:          notion.URLProperty(r.Link),
	}
	if r.CitationKey != nil {
		props[PropCitationKey] = notion.TitleProperty(*r.CitationKey)
	}
	if r.PublicationDate != nil {
		props[PropPublicationDate] = notion.DateProperty(*r.PublicationDate)
	}
	if r.URL != nil {
		props[PropURL] = notion.URLProperty(*r.URL)
	}
	return props
}

// IssueKind classifies a non-fatal mapping problem.
type IssueKind string

const (
	// IssueMissingCitationKey means Extra has no "Citation Key: ..." line.
	IssueMissingCitationKey IssueKind = "missing_citation_key"

	// IssueBadDate means the item date could not be parsed and was dropped.
	IssueBadDate IssueKind = "bad_date"

	// IssueBadOption means an author or tag was dropped because Notion does
	// not accept commas in multi-select option names.
	IssueBadOption IssueKind = "bad_option"
)

// Issue is a non-fatal problem found while mapping one item.
type Issue struct {
	Key     string    `json:"key" yaml:"key"`
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

// Result is the outcome of Map.
type Result struct {
	Record Record
	Issues []Issue
}

// Options tune Map.
type Options struct {
	// StrictDates makes an unparseable date an error instead of an issue.
	StrictDates bool
}

// Map converts one Zotero item into a Record.
func Map(item zotero.Item, opts Options) (Result, error) {
	data := item.Data
	res := Result{
		Record: Record{
			Title:         data.Title,
			Authors:       Authors(data.Creators),
			Tags:          Tags(data.Tags),
			ZoteroKey:     item.Key,
			ZoteroVersion: item.Version,
			DateModified:  data.DateModified,
			DateAdded:     data.DateAdded,
			Link:          item.Links.Alternate.Href,
		},
	}

	res.Record.Authors = res.dropCommaOptions(item.Key, PropAuthors, res.Record.Authors)
	res.Record.Tags = res.dropCommaOptions(item.Key, PropTags, res.Record.Tags)

	if key, ok := CitationKey(data.Extra); ok {
		res.Record.CitationKey = &key
	} else {
		res.Issues = append(res.Issues, Issue{
			Key:     item.Key,
			Kind:    IssueMissingCitationKey,
			Message: fmt.Sprintf("no citation key in extra field (title %q)", data.Title),
		})
	}

	if data.Date != nil && *data.Date != "" {
		date, err := ParseDate(*data.Date)
		switch {
		case err == nil:
			res.Record.PublicationDate = &date
		case opts.StrictDates:
			return Result{}, fmt.Errorf("item %s: %w", item.Key, err)
		default:
			res.Issues = append(res.Issues, Issue{
				Key:     item.Key,
				Kind:    IssueBadDate,
				Message: err.Error(),
			})
		}
	}

	if data.URL != nil && *data.URL != "" {
		u := *data.URL
		res.Record.URL = &u
	}

	if data.AbstractNote != nil && *data.AbstractNote != "" {
		res.Record.Blocks = []notion.Block{
			notion.Heading2Block(AbstractHeading),
			notion.ParagraphBlock(Truncate(*data.AbstractNote, MaxAbstractLength)),
		}
	}

	return res, nil
}

// dropCommaOptions removes names containing a comma, recording an issue for
// each one.
func (r *Result) dropCommaOptions(key, column string, names []string) []string {
	kept := names[:0]
	for _, name := range names {
		if strings.Contains(name, ",") {
			r.Issues = append(r.Issues, Issue{
				Key:     key,
				Kind:    IssueBadOption,
				Message: fmt.Sprintf("%s entry %q dropped: commas are not allowed", column, name),
			})
			continue
		}
		kept = append(kept, name)
	}
	return kept
}

// CitationKey extracts the Better BibTeX citation key from an item's Extra
// field. An empty capture counts as missing.
func CitationKey(extra string) (string, bool) {
	m := citationKeyRegexp.FindStringSubmatch(extra)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// Authors builds one label per creator of type author. Name parts are taken
// in the order name, firstName, middleName, lastName; every present part but
// lastName is followed by a space.
func Authors(creators []zotero.Creator) []string {
	authors := []string{}
	for _, c := range creators {
		if c.CreatorType != "author" {
			continue
		}
		var label string
		for _, part := range []*string{c.Name, c.FirstName, c.MiddleName} {
			if part != nil {
				label += *part + " "
			}
		}
		if c.LastName != nil {
			label += *c.LastName
		}
		authors = append(authors, label)
	}
	return authors
}

// Tags returns the manual tags, minus the reserved tablet tags.
func Tags(tags []zotero.Tag) []string {
	out := []string{}
	for _, t := range tags {
		if t.IsAutomatic() || reservedTags[t.Tag] {
			continue
		}
		out = append(out, t.Tag)
	}
	return out
}
