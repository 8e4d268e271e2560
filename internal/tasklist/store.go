package tasklist

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Store owns the task list, the new-task input draft and the edit session.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	tasks     []Task
	input     string
	edit      *EditSession
	listeners []Listener
	log       *slog.Logger
	newID     func() string
}

// NewStore creates an empty store. A nil logger discards output.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{
		log:   log,
		newID: uuid.NewString,
	}
}

// Subscribe registers a listener for store events.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Store) emit(ev Event) {
	for _, l := range s.listeners {
		l(ev)
	}
}

// SetInput replaces the new-task input draft.
func (s *Store) SetInput(text string) {
	s.input = text
}

// Input returns the new-task input draft.
func (s *Store) Input() string {
	return s.input
}

// AddInput adds the current input draft as a task.
func (s *Store) AddInput() (Task, bool) {
	return s.Add(s.input)
}

// Add appends the trimmed text as an open task and clears the input draft.
// Empty or whitespace-only text is ignored.
func (s *Store) Add(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}

	task := Task{ID: s.newID(), Text: text}
	s.tasks = append(s.tasks, task)
	s.input = ""

	index := len(s.tasks) - 1
	s.log.Debug("task added", "index", index, "id", task.ID)
	s.emit(TaskAdded{Index: index, Task: task})
	return task, true
}

// Toggle flips the completion flag of the task at index.
func (s *Store) Toggle(index int) bool {
	if !s.inRange(index) {
		return false
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	s.log.Debug("task toggled", "index", index, "completed", s.tasks[index].Completed)
	return true
}

// BeginEdit opens an edit session seeded with the text at index.
// An already open session is replaced and its draft discarded.
func (s *Store) BeginEdit(index int) bool {
	if !s.inRange(index) {
		return false
	}
	if s.edit != nil && s.edit.Index != index {
		s.log.Debug("edit session replaced", "from", s.edit.Index, "to", index)
	}
	s.edit = &EditSession{Index: index, Draft: s.tasks[index].Text}
	s.emit(EditStarted{Index: index})
	return true
}

// UpdateDraft overwrites the draft of the open edit session.
func (s *Store) UpdateDraft(text string) bool {
	if s.edit == nil {
		return false
	}
	s.edit.Draft = text
	return true
}

// CommitEdit writes the trimmed draft back and closes the session.
// An empty draft leaves the session open.
func (s *Store) CommitEdit() bool {
	if s.edit == nil {
		return false
	}
	text := strings.TrimSpace(s.edit.Draft)
	if text == "" {
		return false
	}

	index := s.edit.Index
	s.tasks[index].Text = text
	s.edit = nil
	s.emit(EditCommitted{Index: index, Task: s.tasks[index]})
	return true
}

// CancelEdit closes the edit session without writing the draft.
func (s *Store) CancelEdit() bool {
	if s.edit == nil {
		return false
	}
	s.edit = nil
	return true
}

// Delete removes the task at index once the confirmer agrees.
// Tasks after index move down by one. An edit session on the deleted
// task is closed; one on a later task follows it to its new index.
func (s *Store) Delete(index int, c Confirmer) bool {
	if !s.inRange(index) {
		return false
	}
	if c == nil || !c.Confirm(DeletePrompt) {
		s.log.Debug("delete declined", "index", index)
		return false
	}

	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)

	if s.edit != nil {
		switch {
		case s.edit.Index == index:
			s.edit = nil
		case s.edit.Index > index:
			s.edit.Index--
		}
	}

	s.log.Info("task deleted", "index", index, "id", removed.ID)
	return true
}

// Tasks returns a copy of the task list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Edit returns the open edit session, if any.
func (s *Store) Edit() (EditSession, bool) {
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
