// File: errors.go
package troupe

import (
	"errors"
	"fmt"
)

// ErrNoSender is the terminal receive outcome: the mailbox holds no queued
// messages and every ActorRef bound to it has been released. Once a receive
// reports ErrNoSender, every subsequent receive on the same mailbox reports it
// again. Match with errors.Is.
var ErrNoSender = errors.New("troupe: no sender remains")

// ExecError reports that the task hosting an actor body did not run the body
// to completion: the body panicked, or the execution substrate rejected the
// task. It is deliberately distinct from an error returned by the body itself,
// so callers can tell "the actor logic failed" apart from "the actor never got
// to finish". Match with errors.As.
type ExecError struct {
	// TaskID identifies the spawned task in spawner logs.
	TaskID string

	// Reason is a short description of why the task did not complete.
	Reason string

	// Panic holds the recovered panic value when the body panicked.
	Panic any

	// Stack is the goroutine stack captured at the point of the panic.
	Stack []byte
}

func (e *ExecError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("troupe: task %s did not run to completion: panic: %v", e.TaskID, e.Panic)
	}
	return fmt.Sprintf("troupe: task %s did not run to completion: %s", e.TaskID, e.Reason)
}
