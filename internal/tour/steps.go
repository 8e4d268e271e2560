// Package tour implements the guided walkthrough of the task list.
//
// The walkthrough is a fixed sequence of steps. The active step moves
// either when the overlay reports a navigation (next, back, skip, finish)
// or when the user performs the action the step asks for: typing and then
// pausing, adding a task, starting an edit, saving it.
package tour

// Step indices.
const (
	StepTaskInput = iota
	StepAddButton
	StepCheckbox
	StepEditButton
	StepEditInput
	StepSaveButton
	StepDeleteButton

	// StepCount is the number of steps in the walkthrough.
	StepCount
)

// Overlay targets, one per step.
const (
	TargetTaskInput    = ".task-input"
	TargetAddButton    = ".add-button"
	TargetCheckbox     = ".checkbox"
	TargetEditButton   = ".edit-button"
	TargetEditInput    = ".task-edit-input"
	TargetSaveButton   = ".save-button"
	TargetDeleteButton = ".delete-button"
)

// Step is one stage of the walkthrough.
type Step struct {
	Target        string `json:"target"`
	Content       string `json:"content"`
	DisableBeacon bool   `json:"disableBeacon"`
}

// DefaultSteps returns the walkthrough in order.
func DefaultSteps() []Step {
	return []Step{
		{Target: TargetTaskInput, Content: "Start by typing your task here.", DisableBeacon: true},
		{Target: TargetAddButton, Content: "Click this button to create your task.", DisableBeacon: true},
		{Target: TargetCheckbox, Content: "Check this box to mark your task as completed.", DisableBeacon: true},
		{Target: TargetEditButton, Content: "Click to edit your task.", DisableBeacon: true},
		{Target: TargetEditInput, Content: "Now you can edit your task here.", DisableBeacon: true},
		{Target: TargetSaveButton, Content: "Save your edited task.", DisableBeacon: true},
		{Target: TargetDeleteButton, Content: "Click to delete your task.", DisableBeacon: true},
	}
}
