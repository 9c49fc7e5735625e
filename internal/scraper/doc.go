// Package scraper loads the COVID-19 dashboard page and extracts a covid.Snapshot from it.
//
// Extraction is table driven: each site revision is a Revision holding the container
// selector for the page layout and one Rule per field (selector path, default value and
// cleanup transform). A selector that matches nothing degrades its field to the rule's
// default, so a markup change never aborts the whole extraction.
//
// Pages are loaded through a Loader. HTTPLoader fetches the raw markup, BrowserLoader
// renders the page in headless Chrome first for markup built by scripts.
package scraper
