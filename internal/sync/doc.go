// Package sync reconciles a Zotero library into a Notion database.
//
// Overview
//
// The sync is one-directional. Zotero is the source of truth; the Notion
// database is a mirror that zotion owns:
//
//	Zotero library (items/top, newest first)
//	     │
//	     ▼
//	   Plan ◄── Index ◄── Notion database (all pages)
//	     │
//	     ├── Create → new page (properties + abstract blocks)
//	     ├── Update → page properties overwritten
//	     └── Skip
//	                      Orphans → page tagged and given a warning icon
//
// Each page carries the Zotero item key ("Zotero: Key") and the item version
// it was written from ("Zotero: Version"). An item whose key has no page is
// created; an item whose version differs from the page's is updated; anything
// else is left alone. Pages whose key no longer exists in Zotero are never
// deleted. They get their Tags replaced by a sentinel tag and an icon, and
// their keys are reported so that someone can remove them by hand.
//
// Usage
//
//	syncer, err := sync.New(zoteroClient, notionClient, &sync.Config{
//	    DatabaseID: cfg.Notion.DatabaseID,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := syncer.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Records to be manually deleted:", strings.Join(result.Flagged, ", "))
//
// Error Handling
//
// Every remote failure aborts the run. There are no retries: running again is
// safe because decisions only depend on what is already in Notion. Mapping
// problems that do not prevent writing a page (a missing citation key, an
// unparseable date) are logged as warnings and returned in Result.Issues.
//
// Concurrency
//
// A run is strictly sequential. The Index is built once and only read
// afterwards. A Syncer must not be shared between concurrent runs.
package sync
