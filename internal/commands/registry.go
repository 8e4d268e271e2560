package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry resolves command names and aliases. One command may be marked
// as the default, which runs when the binary is started without arguments.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Command
	commands []Command
	fallback string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c under its name and each of its aliases.
// No key may already be taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(c)
}

// RegisterDefault adds c and makes it the default command.
func (r *Registry) RegisterDefault(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallback != "" {
		return fmt.Errorf("default command already set: %s", r.fallback)
	}
	if err := r.add(c); err != nil {
		return err
	}
	r.fallback = c.Name()
	return nil
}

func (r *Registry) add(c Command) error {
	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, k := range keys {
		if _, taken := r.byName[k]; taken {
			return fmt.Errorf("command name already taken: %s", k)
		}
	}
	for _, k := range keys {
		r.byName[k] = c
	}
	r.commands = append(r.commands, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Default returns the command to run when none is named.
func (r *Registry) Default() (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.fallback == "" {
		return nil, false
	}
	return r.byName[r.fallback], true
}

// All returns each command once: the default first, the rest by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rank := func(c Command) int {
		if c.Name() == r.fallback {
			return 0
		}
		return 1
	}
	all := slices.Clone(r.commands)
	slices.SortFunc(all, func(a, b Command) int {
		if d := rank(a) - rank(b); d != 0 {
			return d
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return all
}

// DefaultRegistry holds the commands of the todotour binary.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}

// RegisterDefault adds c to DefaultRegistry as its default command.
func RegisterDefault(c Command) {
	if err := DefaultRegistry.RegisterDefault(c); err != nil {
		panic(err)
	}
}
