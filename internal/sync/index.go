package sync

import (
	"fmt"
	"strings"

	"github.com/steveyegge/zotion/internal/notion"
	"github.com/steveyegge/zotion/internal/record"
	"github.com/tidwall/gjson"
)

// IndexEntry is what the sync needs to know about an existing page.
type IndexEntry struct {
	PageID      string
	Version     int
	CitationKey string
}

// Index maps Zotero item keys to their pages.
type Index map[string]IndexEntry

var (
	keyPath      = gjson.Escape(record.PropZoteroKey) + ".rich_text.#.plain_text"
	versionPath  = gjson.Escape(record.PropZoteroVersion) + ".number"
	citationPath = gjson.Escape(record.PropCitationKey) + ".title.#.plain_text"
)

// BuildIndex indexes pages by their Zotero key.
//
// A page without a key fails with ErrMissingSourceKey and a key on two pages
// fails with ErrDuplicateSourceKey. A page without a version is indexed at
// version 0, so the next run rewrites it.
func BuildIndex(pages []notion.Page) (Index, error) {
	index := make(Index, len(pages))
	for _, page := range pages {
		props := gjson.ParseBytes(page.Properties)

		key := joinText(props.Get(keyPath))
		if key == "" {
			return nil, fmt.Errorf("page %s: %w", page.ID, ErrMissingSourceKey)
		}
		if prev, ok := index[key]; ok {
			return nil, fmt.Errorf("key %s on pages %s and %s: %w", key, prev.PageID, page.ID, ErrDuplicateSourceKey)
		}

		index[key] = IndexEntry{
			PageID:      page.ID,
			Version:     int(props.Get(versionPath).Int()),
			CitationKey: joinText(props.Get(citationPath)),
		}
	}
	return index, nil
}

// joinText concatenates the plain_text of every rich text segment.
func joinText(segments gjson.Result) string {
	var b strings.Builder
	for _, s := range segments.Array() {
		b.WriteString(s.String())
	}
	return strings.TrimSpace(b.String())
}
