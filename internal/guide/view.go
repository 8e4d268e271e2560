package guide

import (
	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

// View is what a rendering surface needs to paint the list and the
// walkthrough overlay.
type View struct {
	Steps     []tour.Step           `json:"steps"`
	Running   bool                  `json:"run"`
	StepIndex int                   `json:"stepIndex"`
	Phase     string                `json:"phase"`
	Tasks     []tasklist.Task       `json:"tasks"`
	Input     string                `json:"input"`
	Edit      *tasklist.EditSession `json:"edit,omitempty"`

	branch tour.Branch
}

// Step returns the active step, if the walkthrough is running.
func (v View) Step() (tour.Step, bool) {
	if !v.Running || v.StepIndex < 0 || v.StepIndex >= len(v.Steps) {
		return tour.Step{}, false
	}
	return v.Steps[v.StepIndex], true
}

// Target returns the overlay target of the active step, or "".
func (v View) Target() string {
	step, ok := v.Step()
	if !ok {
		return ""
	}
	return step.Target
}

// Editing reports whether the walkthrough is on the direct-edit branch.
func (v View) Editing() bool {
	return v.branch == tour.BranchEdit
}

func (c *Controller) viewLocked() View {
	state := c.machine.State()
	steps := make([]tour.Step, len(c.steps))
	copy(steps, c.steps)

	v := View{
		Steps:     steps,
		Running:   state.Running(),
		StepIndex: state.Step,
		Phase:     state.Phase.String(),
		Tasks:     c.store.Tasks(),
		Input:     c.store.Input(),
		branch:    state.Branch,
	}
	if session, ok := c.store.Edit(); ok {
		v.Edit = &session
	}
	return v
}
