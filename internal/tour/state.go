package tour

import "fmt"

// Phase is the lifecycle of the walkthrough.
type Phase int

const (
	// PhaseIdle is the state before the list view is mounted.
	PhaseIdle Phase = iota
	// PhaseRunning means a step is active.
	PhaseRunning
	// PhaseFinished means the user completed or closed the walkthrough.
	PhaseFinished
	// PhaseSkipped means the user skipped the walkthrough.
	PhaseSkipped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	case PhaseSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Branch records how the user reached the edit steps.
type Branch int

const (
	// BranchAdd is the path through typing and adding a task.
	BranchAdd Branch = iota
	// BranchEdit means the user opened an edit directly and has not saved yet.
	BranchEdit
)

func (b Branch) String() string {
	if b == BranchEdit {
		return "edit"
	}
	return "add"
}

// State is the full walkthrough state. Step is meaningful only while
// Phase is PhaseRunning and is then always in [0, StepCount).
type State struct {
	Phase  Phase  `json:"-"`
	Step   int    `json:"step"`
	Branch Branch `json:"-"`
}

// Running reports whether a step is active.
func (s State) Running() bool {
	return s.Phase == PhaseRunning
}

func (s State) String() string {
	return fmt.Sprintf("%s/%d/%s", s.Phase, s.Step, s.Branch)
}

// Start moves an unmounted walkthrough to its first step.
// A walkthrough that has already ended stays ended.
func Start(s State) State {
	if s.Phase != PhaseIdle {
		return s
	}
	return State{Phase: PhaseRunning, Step: StepTaskInput, Branch: s.Branch}
}

// Next returns the state after ev. Pairs of state and event with no
// transition return s unchanged; Next never fails.
func Next(s State, ev Event) State {
	if !s.Running() {
		return s
	}

	switch e := ev.(type) {
	case Callback:
		return onCallback(s, e)

	case Idle:
		switch {
		case e.Source == SourceTaskInput && s.Step == StepTaskInput:
			s.Step = StepAddButton
		case e.Source == SourceEditInput && s.Step == StepEditInput:
			s.Step = StepSaveButton
		}

	case TaskAdded:
		if s.Step == StepAddButton {
			s.Step = StepCheckbox
		}

	case EditStarted:
		s.Branch = BranchEdit
		if s.Step == StepEditButton {
			s.Step = StepEditInput
		}

	case EditCommitted:
		s.Branch = BranchAdd
		if s.Step == StepSaveButton {
			s.Step = StepDeleteButton
		}
	}
	return s
}

func onCallback(s State, c Callback) State {
	switch c.Status {
	case StatusFinished:
		s.Phase = PhaseFinished
		return s
	case StatusSkipped:
		s.Phase = PhaseSkipped
		return s
	}

	if c.Type != TypeStepAfter {
		return s
	}
	if c.Index < 0 || c.Index >= StepCount {
		return s
	}
	if c.Action == ActionPrev {
		return retreat(s, c.Index)
	}
	return advance(s, c.Index)
}

func advance(s State, i int) State {
	editing := s.Branch == BranchEdit

	switch {
	case i == StepEditButton && editing:
		s.Step = StepEditInput
	case i == StepSaveButton && editing:
		// Held until the save itself is observed.
	case i+1 >= StepCount:
		s.Phase = PhaseFinished
	default:
		s.Step = i + 1
	}
	return s
}

func retreat(s State, i int) State {
	switch {
	case i == StepDeleteButton && s.Branch == BranchAdd:
		s.Step = StepEditButton
	case i == StepTaskInput:
		// The overlay offers no back control on the first step.
	default:
		s.Step = i - 1
	}
	return s
}
