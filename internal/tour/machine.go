package tour

import "log/slog"

// Machine holds the walkthrough state and logs its transitions.
// It is not safe for concurrent use.
type Machine struct {
	state State
	log   *slog.Logger
}

// NewMachine creates an unmounted machine. A nil logger discards output.
func NewMachine(log *slog.Logger) *Machine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Machine{log: log}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Start activates the first step. It reports false if the walkthrough
// was already started or has ended.
func (m *Machine) Start() bool {
	next := Start(m.state)
	if next == m.state {
		return false
	}
	m.log.Debug("tour started")
	m.state = next
	return true
}

// Dispatch applies ev and reports whether the state changed.
func (m *Machine) Dispatch(ev Event) bool {
	if !m.state.Running() {
		m.log.Debug("tour event ignored", "event", ev.String(), "reason", "not running", "phase", m.state.Phase.String())
		return false
	}

	next := Next(m.state, ev)
	if next == m.state {
		m.log.Debug("tour event ignored", "event", ev.String(), "reason", "no transition", "state", m.state.String())
		return false
	}

	m.log.Debug("tour transition", "event", ev.String(), "from", m.state.String(), "to", next.String())
	m.state = next
	return true
}
