// Package zotero reads items from the Zotero Web API (v3).
//
// Only what the sync needs is modelled: top-level items of one user or group
// library, walked page by page in descending dateAdded order.
package zotero

// Item is one top-level library item as returned with format=json.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Links   Links    `json:"links"`
	Data    ItemData `json:"data"`
}

// Links holds the item's related URLs.
type Links struct {
	Alternate Link `json:"alternate"`
}

// Link is a single hyperlink.
type Link struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// ItemData is the editable part of an item. Optional fields are pointers so
// that an absent field can be told apart from an empty one.
type ItemData struct {
	Key          string    `json:"key"`
	Version      int       `json:"version"`
	ItemType     string    `json:"itemType"`
	Title        string    `json:"title"`
	Date         *string   `json:"date,omitempty"`
	URL          *string   `json:"url,omitempty"`
	AbstractNote *string   `json:"abstractNote,omitempty"`
	Extra        string    `json:"extra"`
	Creators     []Creator `json:"creators"`
	Tags         []Tag     `json:"tags"`
	DateAdded    string    `json:"dateAdded"`
	DateModified string    `json:"dateModified"`
}

// Creator is an author, editor or other contributor. Single-field creators
// carry Name; two-field creators carry FirstName and LastName.
type Creator struct {
	CreatorType string  `json:"creatorType"`
	Name        *string `json:"name,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	MiddleName  *string `json:"middleName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
}

// Tag types as reported by the API. Manual tags usually omit the field.
const (
	TagManual    = 0
	TagAutomatic = 1
)

// Tag is an item tag.
type Tag struct {
	Tag  string `json:"tag"`
	Type *int   `json:"type,omitempty"`
}

// IsAutomatic reports whether the tag was added by Zotero rather than by
// the user.
func (t Tag) IsAutomatic() bool {
	return t.Type != nil && *t.Type != TagManual
}
