package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pfrederiksen/covid-widget/internal/widget"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(name)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", name)
	}
	return format, nil
}

// WriteOutput writes the widget in the specified format
func WriteOutput(w io.Writer, wd *widget.Widget, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, wd)
	case FormatText:
		return writeText(w, wd, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText draws the widget as a boxed table, one row per widget line
func writeText(w io.Writer, wd *widget.Widget, verbose bool) error {
	width := 0
	for _, row := range wd.Rows {
		if n := text.RuneWidthWithoutEscSequences(rowText(row)); n > width {
			width = n
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	if verbose {
		t.AppendHeader(table.Row{"Row", "Text", "Size"})
	}

	for _, row := range wd.Rows {
		line := alignment(row.Align).Apply(rowText(row), width)
		if verbose {
			t.AppendRow(table.Row{row.Kind, line, row.FontSize})
		} else {
			t.AppendRow(table.Row{line})
		}
	}

	t.SetCaption("background %s (%s) · refresh after %s", wd.Background, wd.Tier, wd.RefreshAfter.Local().Format(time.DateTime))
	t.Render()

	return nil
}

func rowText(row widget.Row) string {
	if row.Kind == widget.RowTitle && row.Icon != "" {
		return "🔥 " + row.Text
	}
	return row.Text
}

func alignment(a widget.Align) text.Align {
	switch a {
	case widget.AlignCenter:
		return text.AlignCenter
	case widget.AlignRight:
		return text.AlignRight
	default:
		return text.AlignLeft
	}
}
