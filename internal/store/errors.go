package store

import (
	"errors"
	"fmt"
)

// Persistence operations reported in PersistenceError.Op.
const (
	OpLoad     = "load"
	OpValidate = "validate"
	OpDecode   = "decode"
	OpEncode   = "encode"
	OpWrite    = "write"
)

// PersistenceError reports a failure to read or write the backing file.
type PersistenceError struct {
	// Op is the step that failed (OpLoad, OpWrite, ...).
	Op string

	// Path is the backing file.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError returns true if err is, or wraps, a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
