package sync_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/steveyegge/zotion/internal/notion"
	"github.com/steveyegge/zotion/internal/sync"
	"github.com/steveyegge/zotion/internal/zotero"
)

// This example demonstrates a full sync against the live APIs.
// Note: This is for documentation only and won't run as a test.
func ExampleSyncer_Run() {
	source, err := zotero.New(zotero.Config{
		LibraryID:   "1234567",
		LibraryType: zotero.LibraryUser,
		APIKey:      "zotero-api-key",
	})
	if err != nil {
		log.Fatal(err)
	}
	mirror := notion.New(notion.Config{Token: "secret_notion_token"})

	syncer, err := sync.New(source, mirror, &sync.Config{DatabaseID: "notion-database-id"})
	if err != nil {
		log.Fatal(err)
	}

	result, err := syncer.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("created=%d updated=%d\n", len(result.Created), len(result.Updated))
	if len(result.Flagged) > 0 {
		fmt.Println("Records to be manually deleted:", strings.Join(result.Flagged, ", "))
	}
}

// This example previews a run without writing to Notion.
func ExampleConfig_dryRun() {
	source, err := zotero.New(zotero.Config{LibraryID: "42", LibraryType: zotero.LibraryGroup})
	if err != nil {
		log.Fatal(err)
	}

	config := sync.DefaultConfig()
	config.DatabaseID = "notion-database-id"
	config.DryRun = true

	syncer, err := sync.New(source, notion.New(notion.Config{Token: "secret"}), config)
	if err != nil {
		log.Fatal(err)
	}

	result, err := syncer.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("would write %d pages\n", result.Writes())
}
