// Package fsm implements a small finite state machine with hooks that run on entering a state.
// It guards lifecycles such as a record that is built incrementally and then sealed.
package fsm

import (
	"fmt"
)

// State represents a possible state of the machine
type State string

// Hook runs after the machine has entered a state.  A hook error reverts the transition.
type Hook func(from, to State) error

// Machine is a basic finite state machine
type Machine struct {
	current   State
	initial   State
	allowable map[State][]State
	onEnter   map[State][]Hook
}

// NewMachine returns a new Machine with configured options.  Without options the machine
// has no transitions and stays in its initial state forever.
func NewMachine(initial State, opts ...MachineOption) (*Machine, error) {
	machine := &Machine{
		current:   initial,
		initial:   initial,
		allowable: map[State][]State{},
		onEnter:   map[State][]Hook{},
	}
	for _, opt := range opts {
		if err := opt(machine); err != nil {
			return nil, err
		}
	}
	return machine, nil
}

// State returns the current state of the Machine
func (m *Machine) State() State {
	return m.current
}

// Is reports whether the machine is currently in state s
func (m *Machine) Is(s State) bool {
	return m.current == s
}

// Allowable checks whether a transition between two states is allowable
func (m *Machine) Allowable(from, to State) bool {
	return contains(to, m.allowable[from])
}

// Transition changes the current state of the machine if it is allowable and runs the hooks
// registered for the new state in registration order.
func (m *Machine) Transition(to State) error {
	if !m.Allowable(m.current, to) {
		return TransitionNotAllowed{Msg: fmt.Sprintf("cannot transition from state %s to %s", m.current, to)}
	}
	from := m.current
	m.current = to
	for _, hook := range m.onEnter[to] {
		if err := hook(from, to); err != nil {
			m.current = from
			return HookError{State: to, Err: err}
		}
	}
	return nil
}

// Reset returns the machine to its initial state without running hooks
func (m *Machine) Reset() {
	m.current = m.initial
}

func contains(s State, all []State) bool {
	for _, a := range all {
		if s == a {
			return true
		}
	}
	return false
}
