package notifier

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pfrederiksen/covid-widget/internal/widget"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the status that would be posted
func (n *DryRunNotifier) Notify(w *widget.Widget) error {
	status := FormatStatus(w)
	fmt.Fprintln(n.out, "--- Status ---")
	fmt.Fprintln(n.out, status)
	fmt.Fprintf(n.out, "\n(Length: %d characters, tier: %s)\n", utf8.RuneCountInString(status), w.Tier)
	return nil
}
