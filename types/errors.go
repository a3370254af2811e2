package types

import "github.com/pkg/errors"

// ErrorCode is the error code returned across the ABI. Zero means success.
type ErrorCode int32

const (
	// Success means operation succeeded.
	Success ErrorCode = 0

	// Failure is the code used for every failure. Callers must not interpret specific nonzero values.
	Failure ErrorCode = 1
)

// ErrForeign is returned when an allocator or other collaborator reported nonzero code.
var ErrForeign = errors.New("operation failed")

// Code converts error to error code.
func Code(err error) ErrorCode {
	if err != nil {
		return Failure
	}
	return Success
}

// Err converts error code to error.
func Err(code ErrorCode) error {
	if code == Success {
		return nil
	}
	return errors.Wrapf(ErrForeign, "error code %d", code)
}

// Failed reports whether code means failure.
func (c ErrorCode) Failed() bool {
	return c != Success
}
