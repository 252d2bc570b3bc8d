package sync

import (
	"context"

	"github.com/steveyegge/zotion/internal/notion"
	"github.com/steveyegge/zotion/internal/zotero"
)

// Source lists the items to mirror. *zotero.Client implements it.
type Source interface {
	// TopItems returns every top-level item, newest first.
	TopItems(ctx context.Context) ([]zotero.Item, error)
}

// Mirror reads and writes the Notion database. *notion.Client implements it.
type Mirror interface {
	// QueryDatabase returns every page of the database.
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)

	// CreatePage adds a page to a database.
	CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error)

	// UpdatePage overwrites the given properties of a page.
	UpdatePage(ctx context.Context, pageID string, req notion.UpdatePageRequest) (*notion.Page, error)
}
