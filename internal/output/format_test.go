package output

import (
	"bytes"
	"testing"

	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, tasklist.Task{Text: "Buy milk"})
	FormatTask(&buf, 12, tasklist.Task{Text: "two\nlines", Completed: true})

	expected := "   1  [ ] Buy milk\n  12  [x] two lines\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatStep(t *testing.T) {
	var buf bytes.Buffer
	FormatStep(&buf, 1, tour.Step{Target: ".add-button", Content: "Click."})

	expected := "   1  .add-button       Click.\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0, 7); got != "Step 1 of 7" {
		t.Errorf("expected %q, got %q", "Step 1 of 7", got)
	}
}
