// Package errs defines sentinel errors shared across all iscc-lib packages.
//
// Validation failures wrap ErrInvalidInput via fmt.Errorf("%w: <detail>", ...)
// so callers can match the error kind with errors.Is while still receiving a
// message that identifies the offending input field.
package errs

import "errors"

var (
	// ErrInvalidInput indicates a malformed or out-of-contract argument:
	// an empty name, a wrong pixel count, an invalid bit length, a truncated
	// ISCC body, and so on. The wrapped message names the specific problem.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyFinalized indicates that Update or Finalize was called on a
	// streaming hasher whose Finalize has already consumed its state.
	ErrAlreadyFinalized = errors.New("already finalized")
)
