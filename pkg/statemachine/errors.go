package statemachine

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Emit when the machine is no longer applying partial states.
var ErrClosed = errors.New("state machine closed")

// PanicError wraps a value recovered from a panicking intent pipeline.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("intent pipeline panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
