// Package guide connects the task list to the walkthrough.
//
// The Controller owns a tasklist.Store, a tour.Machine and two debouncers,
// one per text input. User actions mutate the store; the store's events and
// the debouncers' idle signals become walkthrough events. Every method that
// changes state returns the View computed right after the change.
package guide

import (
	"log/slog"
	"sync"
	"time"

	"todotour/internal/debounce"
	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

// Options configures a Controller.
type Options struct {
	// IdlePeriod is the quiet period for both inputs.
	IdlePeriod time.Duration

	// AfterFunc replaces the debouncers' scheduler.
	AfterFunc debounce.AfterFunc

	// Logger receives debug and info records. Nil discards.
	Logger *slog.Logger
}

// Controller is safe for concurrent use; every call runs to completion
// before the next one starts.
type Controller struct {
	mu        sync.Mutex
	store     *tasklist.Store
	machine   *tour.Machine
	steps     []tour.Step
	inputIdle *debounce.Debouncer
	editIdle  *debounce.Debouncer
	log       *slog.Logger
	subs      []func(View)
	closed    bool
}

// New creates a controller with an empty list and an unmounted walkthrough.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		store:   tasklist.NewStore(log.With("component", "tasklist")),
		machine: tour.NewMachine(log.With("component", "tour")),
		steps:   tour.DefaultSteps(),
		log:     log,
	}

	var debounceOpts []debounce.Option
	if opts.AfterFunc != nil {
		debounceOpts = append(debounceOpts, debounce.WithAfterFunc(opts.AfterFunc))
	}
	c.inputIdle = debounce.New(opts.IdlePeriod, func() { c.onIdle(tour.SourceTaskInput) }, debounceOpts...)
	c.editIdle = debounce.New(opts.IdlePeriod, func() { c.onIdle(tour.SourceEditInput) }, debounceOpts...)

	c.store.Subscribe(c.onStoreEvent)
	return c
}

// Subscribe registers fn to receive the View after every change,
// including changes caused by idle timers. fn must not call back into
// the controller synchronously.
func (c *Controller) Subscribe(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Mount starts the walkthrough. Later calls do nothing.
func (c *Controller) Mount() View {
	return c.update(func() bool {
		return c.machine.Start()
	})
}

// Close disposes both debouncers. No idle signal is delivered afterwards
// and every later call leaves the state unchanged.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.inputIdle.Dispose()
	c.editIdle.Dispose()
	c.log.Debug("controller closed")
}

// View returns the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// TypeInput replaces the new-task input and restarts its idle timer.
func (c *Controller) TypeInput(text string) View {
	return c.update(func() bool {
		c.store.SetInput(text)
		c.inputIdle.Notify()
		return true
	})
}

// AddTask adds the current input as a task.
func (c *Controller) AddTask() View {
	return c.update(func() bool {
		_, ok := c.store.AddInput()
		return ok
	})
}

// ToggleTask flips completion of the task at index.
func (c *Controller) ToggleTask(index int) View {
	return c.update(func() bool {
		return c.store.Toggle(index)
	})
}

// BeginEdit opens an edit session on the task at index.
func (c *Controller) BeginEdit(index int) View {
	return c.update(func() bool {
		return c.store.BeginEdit(index)
	})
}

// TypeDraft replaces the edit draft and restarts its idle timer.
// Without an open session it does nothing.
func (c *Controller) TypeDraft(text string) View {
	return c.update(func() bool {
		if !c.store.UpdateDraft(text) {
			return false
		}
		c.editIdle.Notify()
		return true
	})
}

// SaveEdit writes the draft back to its task.
func (c *Controller) SaveEdit() View {
	return c.update(func() bool {
		return c.store.CommitEdit()
	})
}

// CancelEdit abandons the open edit session.
func (c *Controller) CancelEdit() View {
	return c.update(func() bool {
		return c.store.CancelEdit()
	})
}

// DeleteTask removes the task at index if confirm agrees.
// confirm runs with the controller locked and must not call back into it.
func (c *Controller) DeleteTask(index int, confirm tasklist.Confirmer) View {
	return c.update(func() bool {
		return c.store.Delete(index, confirm)
	})
}

// Callback applies a navigation callback from the overlay.
func (c *Controller) Callback(cb tour.Callback) View {
	return c.update(func() bool {
		return c.machine.Dispatch(cb)
	})
}

// Tasks returns a copy of the task list.
func (c *Controller) Tasks() []tasklist.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Tasks()
}

// update runs fn under the lock and, if it changed anything, publishes
// the new View to subscribers after unlocking.
func (c *Controller) update(fn func() bool) View {
	c.mu.Lock()
	if c.closed {
		v := c.viewLocked()
		c.mu.Unlock()
		return v
	}
	changed := fn()
	v := c.viewLocked()
	subs := c.subs
	c.mu.Unlock()

	if changed {
		for _, s := range subs {
			s(v)
		}
	}
	return v
}

// onStoreEvent runs inside a store call, so the lock is already held.
func (c *Controller) onStoreEvent(ev tasklist.Event) {
	switch e := ev.(type) {
	case tasklist.TaskAdded:
		c.machine.Dispatch(tour.TaskAdded{})
	case tasklist.EditStarted:
		c.machine.Dispatch(tour.EditStarted{Index: e.Index})
	case tasklist.EditCommitted:
		c.machine.Dispatch(tour.EditCommitted{})
	}
}

func (c *Controller) onIdle(src tour.Source) {
	c.update(func() bool {
		return c.machine.Dispatch(tour.Idle{Source: src})
	})
}
