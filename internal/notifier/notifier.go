package notifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/covid-widget/internal/widget"
)

// MaxStatusLength is the Twitter status limit in characters
const MaxStatusLength = 280

// ErrUnavailable is returned when asked to publish a placeholder widget
var ErrUnavailable = errors.New("widget has no data to publish")

// Notifier defines the interface for publishing a widget
type Notifier interface {
	// Notify publishes the widget summary
	Notify(w *widget.Widget) error
}

// FormatStatus formats the widget rows as a status update
func FormatStatus(w *widget.Widget) string {
	var b strings.Builder

	title := w.Title
	count := ""
	var details []string
	for _, row := range w.Rows {
		switch row.Kind {
		case widget.RowTitle:
			title = row.Text
		case widget.RowCount:
			count = row.Text
		default:
			if strings.TrimSpace(row.Text) != "" {
				details = append(details, row.Text)
			}
		}
	}

	fmt.Fprintf(&b, "🔥 %s: %s\n", title, count)
	for _, detail := range details {
		fmt.Fprintf(&b, "%s\n", detail)
	}

	if w.URL != "" {
		fmt.Fprintf(&b, "\n🔗 %s\n", w.URL)
	}
	b.WriteString("\n#코로나19 #COVID19")

	return truncate(b.String(), MaxStatusLength)
}

// truncate shortens s to at most limit characters, ending with an ellipsis
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
