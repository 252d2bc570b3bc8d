package notion

import (
	"encoding/json"
	"testing"
)

func TestPropertyValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value PropertyValue
		want  string
	}{
		{
			name:  "title",
			value: TitleProperty("smith2020"),
			want:  `{"title":[{"type":"text","text":{"content":"smith2020"}}]}`,
		},
		{
			name:  "number",
			value: NumberProperty(42),
			want:  `{"number":42}`,
		},
		{
			name:  "date",
			value: DateProperty("2020-03-05"),
			want:  `{"date":{"start":"2020-03-05"}}`,
		},
		{
			name:  "url",
			value: URLProperty("https://example.org"),
			want:  `{"url":"https://example.org"}`,
		},
		{
			name:  "empty multi select clears the column",
			value: MultiSelectProperty(),
			want:  `{"multi_select":[]}`,
		},
		{
			name:  "multi select",
			value: MultiSelectProperty("a", "b"),
			want:  `{"multi_select":[{"name":"a"},{"name":"b"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPropertyValueUnknownType(t *testing.T) {
	if _, err := json.Marshal(PropertyValue{Type: "formula"}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestParagraphBlockHasNoStyling(t *testing.T) {
	data, err := json.Marshal(ParagraphBlock("text"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"object":"block","type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"text"},` +
		`"annotations":{"bold":false,"italic":false,"strikethrough":false,"underline":false,"code":false}}]}}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}
