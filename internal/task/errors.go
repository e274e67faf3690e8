package task

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes task errors.
type ErrorCode string

const (
	// ErrCodeInvalidState indicates an operation that the task's current
	// state does not allow, such as assigning a second id.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// Error is returned by Task operations that refuse to produce a new value.
type Error struct {
	Code    ErrorCode
	Message string
	TaskID  int64
}

func (e *Error) Error() string {
	if e.TaskID != 0 {
		return fmt.Sprintf("%s: %s (id=%d)", e.Code, e.Message, e.TaskID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidState returns true if err is, or wraps, an invalid state error.
func IsInvalidState(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeInvalidState
	}
	return false
}

// NewIDAlreadyAssignedError creates the error returned when AssignID is
// called on a task that already carries an id.
func NewIDAlreadyAssignedError(id int64) *Error {
	return &Error{
		Code:    ErrCodeInvalidState,
		Message: "task already has an id",
		TaskID:  id,
	}
}
