// Package record maps Zotero items onto the Notion database schema.
//
// Map is a pure function. It never talks to either API; it returns a typed
// Record plus the non-fatal issues found along the way, and the caller
// decides whether to log or escalate them:
//
//	res, err := record.Map(item, record.Options{})
//	if err != nil {
//	    return err // only with Options.StrictDates
//	}
//	for _, issue := range res.Issues {
//	    logger.Printf("WARNING: %s", issue)
//	}
//	props := res.Record.Properties()
//
// The Notion column names are fixed and listed as Prop* constants. A new
// database has to be created with these columns and types before the first
// sync.
package record
