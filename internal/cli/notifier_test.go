package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestColorNotifierWritesOutcomeLines(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	n := NewColorNotifier(&buf)

	n.Success("Updated client CL-001")
	n.Error("servings update failed")

	want := "✓ Updated client CL-001\n✗ servings update failed\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
