package notion

import (
	"encoding/json"
	"fmt"
)

// Property types understood by PropertyValue.
const (
	TypeTitle       = "title"
	TypeRichText    = "rich_text"
	TypeNumber      = "number"
	TypeDate        = "date"
	TypeMultiSelect = "multi_select"
	TypeURL         = "url"
)

// Page is a Notion page as returned by query, create and update calls.
type Page struct {
	Object     string          `json:"object"`
	ID         string          `json:"id"`
	URL        string          `json:"url,omitempty"`
	Archived   bool            `json:"archived"`
	Icon       *Icon           `json:"icon,omitempty"`
	Properties json.RawMessage `json:"properties"`
}

// Icon is a page icon. Only emoji icons are written by zotion.
type Icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

// EmojiIcon returns an emoji icon.
func EmojiIcon(emoji string) *Icon {
	return &Icon{Type: "emoji", Emoji: emoji}
}

// Text is the text payload of a rich text object.
type Text struct {
	Content string `json:"content"`
}

// Annotations are the styling flags of a rich text object.
type Annotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Underline     bool `json:"underline"`
	Code          bool `json:"code"`
}

// RichText is one rich text object.
type RichText struct {
	Type        string       `json:"type"`
	Text        *Text        `json:"text,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
}

// PlainRichText returns a single unstyled text segment.
func PlainRichText(content string) []RichText {
	return []RichText{{Type: "text", Text: &Text{Content: content}}}
}

// Option is a multi-select option, matched by name.
type Option struct {
	Name string `json:"name"`
}

// DateValue is the payload of a date property.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// PropertyValue is a write-side property value. Type selects which of the
// payload fields is serialized.
type PropertyValue struct {
	Type        string
	Title       []RichText
	RichText    []RichText
	Number      *float64
	Date        *DateValue
	MultiSelect []Option
	URL         *string
}

// MarshalJSON emits {"<type>": <payload>}. Empty title, rich text and
// multi-select payloads are written as [] so that updates clear the column.
func (p PropertyValue) MarshalJSON() ([]byte, error) {
	var payload any
	switch p.Type {
	case TypeTitle:
		payload = nonNil(p.Title)
	case TypeRichText:
		payload = nonNil(p.RichText)
	case TypeNumber:
		payload = p.Number
	case TypeDate:
		payload = p.Date
	case TypeMultiSelect:
		opts := p.MultiSelect
		if opts == nil {
			opts = []Option{}
		}
		payload = opts
	case TypeURL:
		payload = p.URL
	default:
		return nil, fmt.Errorf("unsupported property type %q", p.Type)
	}
	return json.Marshal(map[string]any{p.Type: payload})
}

func nonNil(rt []RichText) []RichText {
	if rt == nil {
		return []RichText{}
	}
	return rt
}

// Properties maps database column names to values.
type Properties map[string]PropertyValue

// TitleProperty returns a title property holding content.
func TitleProperty(content string) PropertyValue {
	return PropertyValue{Type: TypeTitle, Title: PlainRichText(content)}
}

// RichTextProperty returns a rich text property holding content.
func RichTextProperty(content string) PropertyValue {
	return PropertyValue{Type: TypeRichText, RichText: PlainRichText(content)}
}

// NumberProperty returns a number property.
func NumberProperty(n float64) PropertyValue {
	return PropertyValue{Type: TypeNumber, Number: &n}
}

// DateProperty returns a date property starting at start.
func DateProperty(start string) PropertyValue {
	return PropertyValue{Type: TypeDate, Date: &DateValue{Start: start}}
}

// URLProperty returns a URL property.
func URLProperty(url string) PropertyValue {
	return PropertyValue{Type: TypeURL, URL: &url}
}

// MultiSelectProperty returns a multi-select property with one option per name.
func MultiSelectProperty(names ...string) PropertyValue {
	opts := make([]Option, 0, len(names))
	for _, name := range names {
		opts = append(opts, Option{Name: name})
	}
	return PropertyValue{Type: TypeMultiSelect, MultiSelect: opts}
}

// Block types written by zotion.
const (
	BlockHeading2  = "heading_2"
	BlockParagraph = "paragraph"
)

// BlockText is the body of a text-bearing block.
type BlockText struct {
	RichText []RichText `json:"rich_text"`
}

// Block is a page content block.
type Block struct {
	Object    string     `json:"object"`
	Type      string     `json:"type"`
	Heading2  *BlockText `json:"heading_2,omitempty"`
	Paragraph *BlockText `json:"paragraph,omitempty"`
}

// Heading2Block returns a level-2 heading.
func Heading2Block(text string) Block {
	return Block{
		Object:   "block",
		Type:     BlockHeading2,
		Heading2: &BlockText{RichText: PlainRichText(text)},
	}
}

// ParagraphBlock returns a paragraph whose text has every annotation
// explicitly switched off.
func ParagraphBlock(text string) Block {
	rt := PlainRichText(text)
	rt[0].Annotations = &Annotations{}
	return Block{
		Object:    "block",
		Type:      BlockParagraph,
		Paragraph: &BlockText{RichText: rt},
	}
}

// Parent identifies the database a new page belongs to.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// CreatePageRequest is the body of POST /v1/pages.
type CreatePageRequest struct {
	Parent     Parent     `json:"parent"`
	Properties Properties `json:"properties"`
	Children   []Block    `json:"children,omitempty"`
}

// UpdatePageRequest is the body of PATCH /v1/pages/{id}.
type UpdatePageRequest struct {
	Properties Properties `json:"properties,omitempty"`
	Icon       *Icon      `json:"icon,omitempty"`
}

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}
