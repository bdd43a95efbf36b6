package fsm

import "fmt"

// TransitionNotAllowed is an error type caused by attempting to transition to a state that is
// not allowed by the FSM
type TransitionNotAllowed struct {
	Msg string
}

func (e TransitionNotAllowed) Error() string {
	return e.Msg
}

// HookError wraps the error of a hook that rejected entering a state
type HookError struct {
	State State
	Err   error
}

func (e HookError) Error() string {
	return fmt.Sprintf("entering state %s: %v", e.State, e.Err)
}

func (e HookError) Unwrap() error {
	return e.Err
}
