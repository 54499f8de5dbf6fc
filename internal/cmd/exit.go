// Package cmd provides command implementations for the scriptbind CLI.
package cmd

import (
	"errors"

	serrors "github.com/scriptbind/cli/internal/errors"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a configuration or export-surface
	// invariant violation.
	ExitValidationError = 2

	// ExitNotFound indicates a snapshot, module, or file was not found.
	ExitNotFound = 5

	// ExitInternalError indicates inconsistent host metadata or a
	// pipeline logic error.
	ExitInternalError = 7
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitInternalError:
		return "Internal Error"
	default:
		return "Unknown"
	}
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed reports whether the command layer already printed the
	// error; main avoids printing it twice.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, serrors.ErrConfiguration), errors.Is(err, serrors.ErrInvariant):
		return ExitValidationError
	case errors.Is(err, serrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, serrors.ErrInternal):
		return ExitInternalError
	default:
		return ExitGeneralError
	}
}
