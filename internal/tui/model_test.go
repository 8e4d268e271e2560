package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todotour/internal/export"
	"todotour/internal/guide"
	"todotour/internal/tasklist"
	"todotour/internal/testutil"
	"todotour/internal/tour"
)

type harness struct {
	t     *testing.T
	m     Model
	ctrl  *guide.Controller
	clock *testutil.FakeClock
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	clock := testutil.NewFakeClock()
	ctrl := guide.New(guide.Options{IdlePeriod: 2 * time.Second, AfterFunc: clock.AfterFunc})
	t.Cleanup(ctrl.Close)
	ctrl.Mount()
	return &harness{t: t, m: New(context.Background(), ctrl, opts), ctrl: ctrl, clock: clock}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(t tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: t})
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) idle() {
	h.clock.Advance(2 * time.Second)
	h.send(refreshMsg{})
}

func (h *harness) step() int {
	return h.ctrl.View().StepIndex
}

func TestModel_TypeIdleAdd(t *testing.T) {
	h := newHarness(t, Options{})

	h.typeText("buy milk")
	if got := h.ctrl.View().Input; got != "buy milk" {
		t.Fatalf("expected input %q, got %q", "buy milk", got)
	}
	if h.step() != tour.StepTaskInput {
		t.Fatalf("expected step to wait for idle, got %d", h.step())
	}

	h.idle()
	if h.step() != tour.StepAddButton {
		t.Fatalf("expected step %d after idle, got %d", tour.StepAddButton, h.step())
	}

	h.key(tea.KeyEnter)
	v := h.ctrl.View()
	if len(v.Tasks) != 1 || v.Tasks[0].Text != "buy milk" {
		t.Fatalf("unexpected tasks: %#v", v.Tasks)
	}
	if h.m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", h.m.input.Value())
	}
	if v.StepIndex != tour.StepCheckbox {
		t.Errorf("expected step %d, got %d", tour.StepCheckbox, v.StepIndex)
	}
}

func TestModel_EditBranch(t *testing.T) {
	h := newHarness(t, Options{})

	h.typeText("a")
	h.idle()
	h.key(tea.KeyEnter)
	h.key(tea.KeyCtrlN)
	if h.step() != tour.StepEditButton {
		t.Fatalf("expected step %d, got %d", tour.StepEditButton, h.step())
	}

	h.key(tea.KeyTab)
	h.typeText("e")
	if h.m.focus != focusEdit {
		t.Fatal("expected edit field focused")
	}
	if h.m.draft.Value() != "a" {
		t.Errorf("expected draft %q, got %q", "a", h.m.draft.Value())
	}
	if h.step() != tour.StepEditInput {
		t.Fatalf("expected step %d, got %d", tour.StepEditInput, h.step())
	}

	h.typeText("b")
	h.idle()
	if h.step() != tour.StepSaveButton {
		t.Fatalf("expected step %d, got %d", tour.StepSaveButton, h.step())
	}

	h.key(tea.KeyEnter)
	v := h.ctrl.View()
	if v.Tasks[0].Text != "ab" || v.Edit != nil {
		t.Fatalf("unexpected view after save: %#v", v)
	}
	if h.m.focus != focusList {
		t.Error("expected focus back on the list")
	}
	if v.StepIndex != tour.StepDeleteButton {
		t.Errorf("expected step %d, got %d", tour.StepDeleteButton, v.StepIndex)
	}

	h.key(tea.KeyCtrlN)
	if v := h.ctrl.View(); v.Running || v.Phase != "finished" {
		t.Errorf("expected finished walkthrough, got %#v", v)
	}
}

func TestModel_CancelEdit(t *testing.T) {
	h := newHarness(t, Options{})
	h.typeText("a")
	h.key(tea.KeyEnter)
	h.key(tea.KeyTab)
	h.typeText("e")
	h.typeText("zz")

	h.key(tea.KeyEsc)
	v := h.ctrl.View()
	if v.Edit != nil || v.Tasks[0].Text != "a" {
		t.Errorf("expected edit abandoned, got %#v", v)
	}
	if h.m.focus != focusList {
		t.Error("expected focus back on the list")
	}
}

func TestModel_DeleteConfirm(t *testing.T) {
	h := newHarness(t, Options{})
	h.typeText("a")
	h.key(tea.KeyEnter)
	h.key(tea.KeyTab)

	h.typeText("d")
	if !strings.Contains(h.m.View(), tasklist.DeletePrompt) {
		t.Fatal("expected delete prompt on screen")
	}
	h.typeText("n")
	if len(h.ctrl.Tasks()) != 1 {
		t.Fatal("declined delete must keep the task")
	}
	if strings.Contains(h.m.View(), tasklist.DeletePrompt) {
		t.Error("expected prompt dismissed")
	}

	h.typeText("d")
	h.typeText("q")
	if h.m.confirming != 0 {
		t.Error("unrelated keys must leave the prompt open")
	}
	h.typeText("y")
	if len(h.ctrl.Tasks()) != 0 {
		t.Error("expected task deleted")
	}
}

func TestModel_Toggle(t *testing.T) {
	h := newHarness(t, Options{})
	h.typeText("a")
	h.key(tea.KeyEnter)
	h.key(tea.KeyTab)

	h.key(tea.KeySpace)
	if !h.ctrl.Tasks()[0].Completed {
		t.Error("expected task completed")
	}
	h.typeText("x")
	if h.ctrl.Tasks()[0].Completed {
		t.Error("expected task reopened")
	}
}

func TestModel_BlankAddKeepsCursor(t *testing.T) {
	h := newHarness(t, Options{})
	for _, text := range []string{"a", "b"} {
		h.typeText(text)
		h.key(tea.KeyEnter)
	}
	h.key(tea.KeyTab)
	h.key(tea.KeyUp)
	if h.m.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", h.m.cursor)
	}

	h.key(tea.KeyTab)
	h.typeText("   ")
	h.key(tea.KeyEnter)
	if n := len(h.ctrl.Tasks()); n != 2 {
		t.Fatalf("expected 2 tasks, got %d", n)
	}
	if h.m.cursor != 0 {
		t.Errorf("expected cursor to stay on 0, got %d", h.m.cursor)
	}

	h.typeText("c")
	h.key(tea.KeyEnter)
	if h.m.cursor != 2 {
		t.Errorf("expected cursor on the new task, got %d", h.m.cursor)
	}
}

func TestModel_TourNavigation(t *testing.T) {
	h := newHarness(t, Options{})

	h.key(tea.KeyCtrlP)
	if h.step() != 0 {
		t.Fatalf("back on the first step must do nothing, got %d", h.step())
	}

	h.key(tea.KeyCtrlN)
	if h.step() != 1 {
		t.Fatalf("expected step 1, got %d", h.step())
	}
	h.key(tea.KeyCtrlP)
	if h.step() != 0 {
		t.Fatalf("expected step 0, got %d", h.step())
	}

	h.key(tea.KeyCtrlX)
	if v := h.ctrl.View(); v.Running || v.Phase != "skipped" {
		t.Errorf("expected skipped walkthrough, got %#v", v)
	}

	h.key(tea.KeyCtrlN)
	if v := h.ctrl.View(); v.Phase != "skipped" {
		t.Errorf("navigation after skip must do nothing, got %#v", v)
	}
}

func TestModel_ViewShowsTooltip(t *testing.T) {
	h := newHarness(t, Options{})

	out := h.m.View()
	for _, want := range []string{"To-Do List", "Step 1 of 7", "Start by typing your task here."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q:\n%s", want, out)
		}
	}

	h.key(tea.KeyCtrlN)
	h.key(tea.KeyCtrlN)
	out = h.m.View()
	if !strings.Contains(out, "Step 3 of 7") {
		t.Errorf("expected third step:\n%s", out)
	}
	if !strings.Contains(out, "target is not on screen") {
		t.Errorf("expected missing target notice with no tasks:\n%s", out)
	}

	h.key(tea.KeyCtrlX)
	if strings.Contains(h.m.View(), "Step ") {
		t.Error("expected no tooltip after skip")
	}
}

func TestModel_Export(t *testing.T) {
	svc := testutil.NewFakeService()
	h := newHarness(t, Options{
		Exporter:   export.New(svc.Provider(), nil),
		ExportList: "Tour",
	})
	h.typeText("a")
	h.key(tea.KeyEnter)

	cmd := h.key(tea.KeyCtrlO)
	if cmd == nil {
		t.Fatal("expected export command")
	}
	if h.m.status != "Exporting..." {
		t.Errorf("unexpected status %q", h.m.status)
	}
	if again := h.key(tea.KeyCtrlO); again != nil {
		t.Error("expected no second export while one is running")
	}

	h.send(cmd())
	if h.m.status != `Exported 1 tasks to "Tour"` {
		t.Errorf("unexpected status %q", h.m.status)
	}
	if got := len(svc.Tasks("tour")); got != 1 {
		t.Errorf("expected 1 exported task, got %d", got)
	}
}

func TestModel_ExportDisabled(t *testing.T) {
	h := newHarness(t, Options{})
	if cmd := h.key(tea.KeyCtrlO); cmd != nil {
		t.Error("expected no command without an exporter")
	}
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t, Options{})
	cmd := h.key(tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
