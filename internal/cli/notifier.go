// Package cli contains the cobra command tree for the studiodesk tool.
package cli

import (
	"io"

	"github.com/fatih/color"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// ColorNotifier renders mutation outcomes as colored terminal lines, the
// CLI analog of the dashboard's toast messages.
type ColorNotifier struct {
	out io.Writer
}

// NewColorNotifier creates a notifier writing to out.
func NewColorNotifier(out io.Writer) *ColorNotifier {
	return &ColorNotifier{out: out}
}

func (n *ColorNotifier) Success(msg string) {
	color.New(color.FgGreen).Fprintf(n.out, "✓ %s\n", msg)
}

func (n *ColorNotifier) Error(msg string) {
	color.New(color.FgRed).Fprintf(n.out, "✗ %s\n", msg)
}

var _ secondary.Notifier = (*ColorNotifier)(nil)
