package fsm

// MachineOption represents options to initially set up a machine
type MachineOption func(m *Machine) error

// WithTransitions adds edges to the transition graph using the T(from, to...) short
// function.  For example, `NewMachine(Open, WithTransitions(T(Open, Sealed)))`
func WithTransitions(transitions ...[]Transition) MachineOption {
	return func(m *Machine) error {
		for _, t := range flatten(transitions) {
			if !contains(t.To, m.allowable[t.From]) {
				m.allowable[t.From] = append(m.allowable[t.From], t.To)
			}
		}
		return nil
	}
}

// WithOnEnter registers a hook that runs every time the machine enters state s
func WithOnEnter(s State, hook Hook) MachineOption {
	return func(m *Machine) error {
		m.onEnter[s] = append(m.onEnter[s], hook)
		return nil
	}
}
