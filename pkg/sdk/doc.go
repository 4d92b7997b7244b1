// Package scanexplorer embeds the scanned-literature search engine in a Go
// program without running the HTTP API.
//
// The client compiles the same query language as the service, sends the
// resulting bodies to OpenSearch and, when a catalog database is configured,
// enriches aggregation results from it.
//
//	client, _ := scanexplorer.New(ctx,
//	    scanexplorer.WithOpenSearch("scan-explorer", "http://localhost:9200"),
//	    scanexplorer.WithPostgres("postgres://scan@localhost/scan_explorer"),
//	)
//	defer client.Close()
//
//	vols, _ := client.SearchCollections(ctx, "bibstem:ApJ volume:[300 TO 400]",
//	    scanexplorer.ListOptions{Page: 1, Limit: 20, Sort: "bibcode_asc"})
//	text, _ := client.OCR(ctx, "ApJ..0333", 4)
package scanexplorer
