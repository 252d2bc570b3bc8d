// Package notion is a small client for the parts of the Notion REST API that
// zotion needs: querying a database, creating pages in it, and updating page
// properties.
//
// # Reading
//
// Pages come back with their properties kept as raw JSON. Callers pick the
// fields they care about (see sync.BuildIndex) instead of decoding the full
// and very polymorphic property schema:
//
//	pages, err := client.QueryDatabase(ctx, databaseID)
//	if err != nil {
//	    return err
//	}
//
// # Writing
//
// Property values are typed. Each PropertyValue carries a Type discriminator
// and marshals to exactly one typed key, which is what the API expects:
//
//	props := notion.Properties{
//	    "Title":  notion.RichTextProperty("Attention Is All You Need"),
//	    "Tags":   notion.MultiSelectProperty("nlp", "transformers"),
//	    "Rating": notion.NumberProperty(5),
//	}
//	_, err := client.CreatePage(ctx, notion.CreatePageRequest{
//	    Parent:     notion.Parent{DatabaseID: databaseID},
//	    Properties: props,
//	})
//
// # Errors
//
// Non-2xx responses are returned as *APIError. Authentication failures also
// match ErrUnauthorized:
//
//	if errors.Is(err, notion.ErrUnauthorized) {
//	    // token revoked or integration not shared with the database
//	}
package notion
