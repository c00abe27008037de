package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoInput indicates no input file was given.
	ErrNoInput = errors.New("no input file")

	// ErrLiveAndWatch indicates mutually exclusive modes were requested.
	ErrLiveAndWatch = errors.New("live and watch modes are exclusive")
)

// OperationError represents an error that occurred during a specific
// operation on a target file.
type OperationError struct {
	Op     string // Operation name (e.g., "read", "render", "write")
	Target string // Target of the operation (file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is, matching both the wrapper and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
