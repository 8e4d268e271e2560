package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todotour/internal/guide"
	"todotour/internal/output"
	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	spotlightStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	buttonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dialogStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tooltipStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1).
			MarginTop(1)
)

// spotlight highlights the first element rendered for the active target,
// the way a page overlay anchors to the first matching node.
type spotlight struct {
	target string
	found  bool
}

func (s *spotlight) render(target, text string) string {
	if s.found || target != s.target {
		return text
	}
	s.found = true
	return spotlightStyle.Render(text)
}

// View implements tea.Model.
func (m Model) View() string {
	v := m.ctrl.View()
	spot := &spotlight{target: v.Target()}

	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString("\n")

	b.WriteString(spot.render(tour.TargetTaskInput, m.input.View()))
	b.WriteString(" ")
	b.WriteString(spot.render(tour.TargetAddButton, buttonStyle.Render("[Add]")))
	b.WriteString("\n\n")

	for i, t := range v.Tasks {
		b.WriteString(m.renderRow(v, spot, i, t))
		b.WriteString("\n")
	}

	if m.confirming >= 0 {
		b.WriteString(dialogStyle.Render(tasklist.DeletePrompt + " (y/n)"))
		b.WriteString("\n")
	}

	if step, ok := v.Step(); ok {
		b.WriteString(renderTooltip(v, step, spot.found))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRow(v guide.View, spot *spotlight, i int, t tasklist.Task) string {
	prefix := "  "
	if m.focus == focusList && i == m.cursor {
		prefix = cursorStyle.Render("> ")
	}

	box := spot.render(tour.TargetCheckbox, output.Checkbox(t.Completed))

	editing := v.Edit != nil && v.Edit.Index == i
	var text, buttons string
	if editing {
		text = spot.render(tour.TargetEditInput, m.draft.View())
		buttons = spot.render(tour.TargetSaveButton, buttonStyle.Render("[Save]"))
	} else {
		text = t.Text
		if t.Completed {
			text = doneStyle.Render(text)
		}
		buttons = spot.render(tour.TargetDeleteButton, buttonStyle.Render("[Delete]")) +
			" " + spot.render(tour.TargetEditButton, buttonStyle.Render("[Edit]"))
	}

	return prefix + box + " " + text + "  " + buttons
}

func renderTooltip(v guide.View, step tour.Step, anchored bool) string {
	var b strings.Builder
	b.WriteString(output.Progress(v.StepIndex, len(v.Steps)))
	b.WriteString("\n")
	b.WriteString(step.Content)
	if !anchored {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("(this step's target is not on screen)"))
	}
	b.WriteString("\n\n")

	var nav []string
	if v.StepIndex > 0 {
		nav = append(nav, "ctrl+p back")
	}
	if v.StepIndex == len(v.Steps)-1 {
		nav = append(nav, "ctrl+n last")
	} else {
		nav = append(nav, "ctrl+n next")
	}
	nav = append(nav, "ctrl+x skip")
	b.WriteString(statusStyle.Render(strings.Join(nav, " · ")))

	return tooltipStyle.Render(b.String())
}
