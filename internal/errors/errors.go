package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/studytrack/studytrack/internal/logger"
)

// ValidationError rejects a mutation before it is applied: empty or
// duplicate names, malformed times, future revision dates. State is
// unchanged and the operation is fully recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError means the mutation was applied in memory but could not
// be made durable (store capacity exceeded, serialization failure, disk
// error). Callers surface it as a warning; there is no automatic retry and
// no rollback of the in-memory change.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistence wraps a storage failure for the named operation.
func NewPersistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// LoadWarning reports a structural anomaly found while loading persisted
// data. The offending record is dropped and loading continues; a warning
// is never fatal.
type LoadWarning struct {
	Record string
	Reason string
}

func (e *LoadWarning) Error() string {
	return fmt.Sprintf("dropped %s: %s", e.Record, e.Reason)
}

// ErrNotSupported marks a capability the host system does not provide
// (typically desktop notifications). Features degrade silently.
var ErrNotSupported = errors.New("not supported on this system")

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
