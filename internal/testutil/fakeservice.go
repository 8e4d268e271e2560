// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todotour/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks
	seq   int

	// Error injection for testing
	ListListsErr    error
	ResolveListErr  error
	CreateListErr   error
	CreateTaskErr   error
	CompleteTaskErr error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]service.Task),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks"},
	}
	return fs
}

// Provider returns a service.Provider that always yields f.
func (f *FakeService) Provider() service.Provider {
	return func(ctx context.Context) (service.Service, error) {
		return f, nil
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
}

// Tasks returns the tasks stored in a list.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list %q: %w", name, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrAmbiguous, name)
	}
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// Generate a simple ID
	id := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	list := service.TaskList{ID: id, Title: name}
	f.lists = append(f.lists, list)
	return list, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasListLocked(listID) {
		return service.Task{}, service.ErrNotFound
	}

	f.seq++
	task := service.Task{
		ID:     fmt.Sprintf("t%d", f.seq),
		Title:  title,
		Status: service.StatusNeedsAction,
	}
	f.tasks[listID] = append(f.tasks[listID], task)
	return task, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, listID, taskID string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			f.tasks[listID][i].Status = service.StatusCompleted
			return nil
		}
	}
	return service.ErrNotFound
}

func (f *FakeService) hasListLocked(listID string) bool {
	for _, l := range f.lists {
		if l.ID == listID {
			return true
		}
	}
	return false
}
