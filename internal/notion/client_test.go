package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient starts an httptest server with handler and returns a client
// pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{
		Token:    "secret-token",
		BaseURL:  server.URL,
		PageSize: 2,
		Logger:   log.New(io.Discard, "", 0),
	})
}

func TestQueryDatabaseFollowsCursor(t *testing.T) {
	var calls []queryRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/databases/db-1/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != APIVersion {
			t.Errorf("Notion-Version = %q", got)
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode query: %v", err)
			return
		}
		calls = append(calls, req)

		switch req.StartCursor {
		case "":
			io.WriteString(w, `{"results":[{"id":"p1"},{"id":"p2"}],"has_more":true,"next_cursor":"c2"}`)
		case "c2":
			io.WriteString(w, `{"results":[{"id":"p3"}],"has_more":false,"next_cursor":null}`)
		default:
			t.Errorf("unexpected cursor %q", req.StartCursor)
		}
	})

	pages, err := client.QueryDatabase(context.Background(), "db-1")
	if err != nil {
		t.Fatalf("QueryDatabase failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 query calls, got %d", len(calls))
	}
	if calls[0].PageSize != 2 {
		t.Errorf("expected page_size 2, got %d", calls[0].PageSize)
	}

	var ids []string
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	want := []string{"p1", "p2", "p3"}
	if len(ids) != len(want) {
		t.Fatalf("expected pages %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("page %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestQueryDatabaseUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
	})

	_, err := client.QueryDatabase(context.Background(), "db-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != "unauthorized" || apiErr.Message != "API token is invalid." {
		t.Errorf("unexpected API error: %+v", apiErr)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.CreatePage(context.Background(), CreatePageRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.Status)
	}
	if apiErr.Message != "bad gateway" {
		t.Errorf("expected raw body as message, got %q", apiErr.Message)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("502 must not match ErrUnauthorized")
	}
}

func TestCreatePage(t *testing.T) {
	var body map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/pages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
			return
		}
		io.WriteString(w, `{"object":"page","id":"new-page"}`)
	})

	page, err := client.CreatePage(context.Background(), CreatePageRequest{
		Parent:     Parent{DatabaseID: "db-1"},
		Properties: Properties{"Title": RichTextProperty("Hello")},
		Children:   []Block{Heading2Block("Abstract")},
	})
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if page.ID != "new-page" {
		t.Errorf("expected page id new-page, got %s", page.ID)
	}

	parent := body["parent"].(map[string]any)
	if parent["database_id"] != "db-1" {
		t.Errorf("unexpected parent: %v", parent)
	}
	if children := body["children"].([]any); len(children) != 1 {
		t.Errorf("expected 1 child block, got %d", len(children))
	}
}

func TestUpdatePageSendsIcon(t *testing.T) {
	var body map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/pages/page-7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
			return
		}
		io.WriteString(w, `{"object":"page","id":"page-7"}`)
	})

	_, err := client.UpdatePage(context.Background(), "page-7", UpdatePageRequest{
		Properties: Properties{"Tags": MultiSelectProperty("Deleted from Zotero")},
		Icon:       EmojiIcon("⚠️"),
	})
	if err != nil {
		t.Fatalf("UpdatePage failed: %v", err)
	}

	icon := body["icon"].(map[string]any)
	if icon["type"] != "emoji" || icon["emoji"] != "⚠️" {
		t.Errorf("unexpected icon: %v", icon)
	}
	if _, ok := body["children"]; ok {
		t.Error("update must not send children")
	}
}
