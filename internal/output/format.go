// Package output provides plain-text formatters for tasks and tour steps.
package output

import (
	"fmt"
	"io"
	"strings"

	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

const (
	// Separator is the rule printed around section headers.
	Separator = "------------"
)

// FormatTask formats a task row.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, checkbox, text)
func FormatTask(w io.Writer, num int, task tasklist.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), normalizeText(task.Text))
}

// Checkbox renders a completion flag.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// FormatStep formats a tour step line.
// Format: "{N:>4}  {TARGET:<18}{CONTENT}\n"
func FormatStep(w io.Writer, num int, step tour.Step) {
	fmt.Fprintf(w, "%4d  %-18s%s\n", num, step.Target, step.Content)
}

// FormatHeader formats a section header.
func FormatHeader(w io.Writer, title string) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, Separator)
}

// Progress formats the overlay's progress label, e.g. "Step 3 of 7".
func Progress(index, total int) string {
	return fmt.Sprintf("Step %d of %d", index+1, total)
}

// normalizeText normalizes task text for single-line display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
