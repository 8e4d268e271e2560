package tour

import "fmt"

// Event is an input to the state machine.
type Event interface {
	isEvent()
	fmt.Stringer
}

// Source identifies which text field went idle.
type Source int

const (
	// SourceTaskInput is the new-task input.
	SourceTaskInput Source = iota
	// SourceEditInput is the edit-draft input.
	SourceEditInput
)

func (s Source) String() string {
	switch s {
	case SourceTaskInput:
		return "task-input"
	case SourceEditInput:
		return "edit-input"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Idle reports that the user stopped typing in a field for the quiet period.
type Idle struct {
	Source Source
}

// TaskAdded reports that a task was appended to the list.
type TaskAdded struct{}

// EditStarted reports that an edit session was opened.
type EditStarted struct {
	Index int
}

// EditCommitted reports that an edit was saved.
type EditCommitted struct{}

func (Idle) isEvent()          {}
func (TaskAdded) isEvent()     {}
func (EditStarted) isEvent()   {}
func (EditCommitted) isEvent() {}
func (Callback) isEvent()      {}

func (e Idle) String() string        { return "idle:" + e.Source.String() }
func (TaskAdded) String() string     { return "task-added" }
func (e EditStarted) String() string { return fmt.Sprintf("edit-started:%d", e.Index) }
func (EditCommitted) String() string { return "edit-committed" }

// Status is the overlay's lifecycle status.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusReady    Status = "ready"
	StatusWaiting  Status = "waiting"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusSkipped  Status = "skipped"
	StatusFinished Status = "finished"
	StatusError    Status = "error"
)

// EventType is the overlay's lifecycle event.
type EventType string

const (
	TypeTourStart      EventType = "tour:start"
	TypeStepBefore     EventType = "step:before"
	TypeBeacon         EventType = "beacon"
	TypeTooltip        EventType = "tooltip"
	TypeStepAfter      EventType = "step:after"
	TypeTourEnd        EventType = "tour:end"
	TypeTourStatus     EventType = "tour:status"
	TypeTargetNotFound EventType = "error:target_not_found"
)

// Action is the control the user used in the overlay.
type Action string

const (
	ActionInit   Action = "init"
	ActionStart  Action = "start"
	ActionStop   Action = "stop"
	ActionReset  Action = "reset"
	ActionPrev   Action = "prev"
	ActionNext   Action = "next"
	ActionGo     Action = "go"
	ActionClose  Action = "close"
	ActionSkip   Action = "skip"
	ActionUpdate Action = "update"
)

// Callback is the raw payload the overlay sends back after each of its
// own lifecycle events. Index is the step the overlay was showing.
type Callback struct {
	Status Status    `json:"status"`
	Type   EventType `json:"type"`
	Index  int       `json:"index"`
	Action Action    `json:"action"`
}

func (c Callback) String() string {
	return fmt.Sprintf("callback:%s/%s/%d/%s", c.Status, c.Type, c.Index, c.Action)
}
