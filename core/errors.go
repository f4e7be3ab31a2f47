// Package core holds the error taxonomy shared by the runtime packages.
//
// Three classes exist:
//   - TerminalError: backend setup, poll, read or render failure; fatal to the run loop
//   - channel errors (ErrChannelClosed, ErrChannelFull): recoverable, returned to the caller
//   - PreconditionError: programming error, raised with panic and never returned
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelClosed is returned by sends after close and by receives once a closed channel is drained
	ErrChannelClosed = errors.New("channel closed")

	// ErrChannelFull is returned by non-blocking sends against a channel at capacity
	ErrChannelFull = errors.New("channel full")

	// ErrNoTerminal reports that no interactive terminal is attached
	ErrNoTerminal = errors.New("not a real terminal or terminal capabilities not available")

	// ErrTerminalClosed reports use of a terminal after it was restored
	ErrTerminalClosed = errors.New("terminal closed")

	// ErrLoopStopped is returned by Run on an event loop that was already stopped
	ErrLoopStopped = errors.New("event loop stopped")

	// ErrLoopRunning is returned by Run while another Run is in progress
	ErrLoopRunning = errors.New("event loop already running")

	// ErrAlreadyRunning is returned by a second call to App.Run
	ErrAlreadyRunning = errors.New("app already running")

	// ErrShutdown is returned by Spawn once shutdown has begun
	ErrShutdown = errors.New("app shutting down")
)

// TerminalError wraps a failure of the terminal backend
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// Terminal builds a TerminalError for op
func Terminal(op string, err error) error {
	return &TerminalError{Op: op, Err: err}
}

// IsTerminalFailure reports whether err carries a TerminalError
func IsTerminalFailure(err error) bool {
	var te *TerminalError
	return errors.As(err, &te)
}

// PreconditionError describes a violated API contract
// Raised via panic; recovering code can type-assert the panic value
type PreconditionError struct {
	Op     string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated in %s: %s", e.Op, e.Detail)
}

// Violation panics with a PreconditionError
func Violation(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

// TaskError wraps the failure of a spawned background task
type TaskError struct {
	ID  string
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.ID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
