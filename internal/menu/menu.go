// Package menu lists the actions available when the widget is opened outside a
// widget surface.
package menu

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Item is one row of the action menu
type Item struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Command  string `json:"command,omitempty"` // CLI subcommand running the action
	Header   bool   `json:"header,omitempty"`
}

// Items returns the fixed menu rows for a widget titled title at version
func Items(title, version string) []Item {
	return []Item{
		{
			Title:    fmt.Sprintf("%s Widget", title),
			Subtitle: fmt.Sprintf("version: %s", version),
			Header:   true,
		},
		{
			Title:    "Check for Updates",
			Subtitle: "Check for updates to the latest version.",
			Command:  "check-update",
		},
		{
			Title:    "Preview Widget",
			Subtitle: "Provides a preview for testing.",
			Command:  "preview",
		},
		{
			Title:    "Clear cache",
			Subtitle: "Clear all caches.",
			Command:  "clear-cache",
		},
	}
}

// Render writes items as a table. The header item becomes the table title.
func Render(w io.Writer, items []Item) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Action", "Description", "Command"})

	for _, item := range items {
		if item.Header {
			t.SetTitle("%s (%s)", item.Title, item.Subtitle)
			continue
		}
		t.AppendRow(table.Row{item.Title, item.Subtitle, item.Command})
	}

	t.Render()
}
