// Package tasklist holds the ordered, in-memory list of tasks and the
// single edit session that may be open against it.
package tasklist

// Task represents a single task row.
// Its position in the list is its identity for every operation;
// ID is a stable key used only for logging and external payloads.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// EditSession is the transient draft of one in-progress edit.
type EditSession struct {
	Index int    `json:"index"`
	Draft string `json:"draft"`
}

// Event is emitted by the store after a mutation the tour cares about.
type Event interface {
	isEvent()
}

// TaskAdded is emitted after a task has been appended.
type TaskAdded struct {
	Index int
	Task  Task
}

// EditStarted is emitted after an edit session has been opened.
type EditStarted struct {
	Index int
}

// EditCommitted is emitted after a draft has been written back.
type EditCommitted struct {
	Index int
	Task  Task
}

func (TaskAdded) isEvent()     {}
func (EditStarted) isEvent()   {}
func (EditCommitted) isEvent() {}

// Listener receives store events synchronously, in the goroutine that
// performed the mutation.
type Listener func(Event)

// DeletePrompt is the question put to the user before a delete.
const DeletePrompt = "Are you sure you want to delete this task?"

// Confirmer answers a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Answer returns a Confirmer that always gives the same answer.
// Surfaces that collect the answer before calling the store use it.
func Answer(yes bool) Confirmer {
	return ConfirmFunc(func(string) bool { return yes })
}
