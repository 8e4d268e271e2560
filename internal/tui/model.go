// Package tui renders the guided task list in a terminal.
//
// The model owns no task state: every frame is painted from the
// controller's current View, and every key becomes a controller call or a
// walkthrough callback.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todotour/internal/export"
	"todotour/internal/guide"
	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

// Options configures the terminal surface.
type Options struct {
	// Exporter handles the export key. Nil disables it.
	Exporter *export.Exporter

	// ExportList is the backend list name used by export.
	ExportList string

	// Logger receives records. Nil discards.
	Logger *slog.Logger
}

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

// refreshMsg asks for a repaint after a change made outside Update,
// such as an idle timer advancing the walkthrough.
type refreshMsg struct{}

type exportDoneMsg struct {
	res export.Result
	err error
}

// Model is the bubbletea model.
type Model struct {
	ctx   context.Context
	ctrl  *guide.Controller
	opts  Options
	log   *slog.Logger
	keys  keyMap
	help  help.Model
	input textinput.Model
	draft textinput.Model

	focus      focus
	cursor     int
	confirming int
	exporting  bool
	status     string
	width      int
}

// New creates a Model over ctrl. The walkthrough must already be mounted.
func New(ctx context.Context, ctrl *guide.Controller, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.ExportList == "" {
		opts.ExportList = export.DefaultListName
	}

	input := textinput.New()
	input.Placeholder = "Add a new task"
	input.CharLimit = 256
	input.Focus()

	draft := textinput.New()
	draft.CharLimit = 256

	return Model{
		ctx:        ctx,
		ctrl:       ctrl,
		opts:       opts,
		log:        log,
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      input,
		draft:      draft,
		focus:      focusInput,
		confirming: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		m.clampCursor()
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.log.Error("export failed", "list", m.opts.ExportList, "error", msg.err)
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Exported %d tasks to %q", msg.res.Created, msg.res.List)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.confirming >= 0 {
		return m.handleConfirm(msg), nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.tourNext()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.tourBack()
		return m, nil
	case key.Matches(msg, m.keys.Skip):
		m.tourSkip()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		cmd := m.startExport()
		return m, cmd
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusEdit:
		return m.handleEditKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleConfirm(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.ctrl.DeleteTask(m.confirming, tasklist.Answer(true))
	case key.Matches(msg, m.keys.No):
		m.ctrl.DeleteTask(m.confirming, tasklist.Answer(false))
	default:
		return m
	}
	m.confirming = -1
	m.syncEdit()
	m.clampCursor()
	return m
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		n := len(m.ctrl.Tasks())
		v := m.ctrl.AddTask()
		m.input.SetValue(v.Input)
		if len(v.Tasks) > n {
			m.cursor = len(v.Tasks) - 1
		}
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusList)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.ctrl.TypeInput(after)
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.ctrl.Tasks())
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusInput)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.ToggleTask(m.cursor)
	case key.Matches(msg, m.keys.Edit):
		v := m.ctrl.BeginEdit(m.cursor)
		if v.Edit != nil {
			m.draft.SetValue(v.Edit.Draft)
			m.draft.CursorEnd()
			m.setFocus(focusEdit)
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < n {
			m.confirming = m.cursor
		}
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		if v := m.ctrl.SaveEdit(); v.Edit == nil {
			m.setFocus(focusList)
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelEdit()
		m.setFocus(focusList)
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusList)
		return m, nil
	}

	before := m.draft.Value()
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	if after := m.draft.Value(); after != before {
		m.ctrl.TypeDraft(after)
	}
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.input, cmds[0] = m.input.Update(msg)
	m.draft, cmds[1] = m.draft.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

// tourNext plays the overlay's Next button. On the last step it ends
// the walkthrough instead.
func (m Model) tourNext() {
	v := m.ctrl.View()
	if !v.Running {
		return
	}
	cb := tour.Callback{
		Status: tour.StatusRunning,
		Type:   tour.TypeStepAfter,
		Index:  v.StepIndex,
		Action: tour.ActionNext,
	}
	if v.StepIndex == len(v.Steps)-1 {
		cb.Status = tour.StatusFinished
		cb.Type = tour.TypeTourEnd
	}
	m.ctrl.Callback(cb)
}

// tourBack plays the overlay's Back button, which the first step lacks.
func (m Model) tourBack() {
	v := m.ctrl.View()
	if !v.Running || v.StepIndex == 0 {
		return
	}
	m.ctrl.Callback(tour.Callback{
		Status: tour.StatusRunning,
		Type:   tour.TypeStepAfter,
		Index:  v.StepIndex,
		Action: tour.ActionPrev,
	})
}

func (m Model) tourSkip() {
	v := m.ctrl.View()
	if !v.Running {
		return
	}
	m.ctrl.Callback(tour.Callback{
		Status: tour.StatusSkipped,
		Type:   tour.TypeTourEnd,
		Index:  v.StepIndex,
		Action: tour.ActionSkip,
	})
}

func (m *Model) startExport() tea.Cmd {
	if m.opts.Exporter == nil || m.exporting {
		return nil
	}
	m.exporting = true
	m.status = "Exporting..."

	ctx, exporter, list := m.ctx, m.opts.Exporter, m.opts.ExportList
	tasks := m.ctrl.Tasks()
	return func() tea.Msg {
		res, err := exporter.Export(ctx, list, tasks)
		return exportDoneMsg{res: res, err: err}
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.input.Blur()
	m.draft.Blur()
	switch f {
	case focusInput:
		m.input.Focus()
	case focusEdit:
		m.draft.Focus()
	}
}

// syncEdit leaves the edit field when the session it belonged to has
// been closed, e.g. by deleting its task.
func (m *Model) syncEdit() {
	if m.focus == focusEdit && m.ctrl.View().Edit == nil {
		m.setFocus(focusList)
	}
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
