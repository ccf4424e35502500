package text

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is reported when storage for a Text cannot be allocated.
// The Text involved is left unmodified.
var ErrOutOfMemory = errors.New("out of memory")

// BufferError describes a failed growth of a Text.
type BufferError struct {
	Op        string // the operation which tried to grow the Text
	Requested int    // requested content length in bytes
	Err       error  // always wraps ErrOutOfMemory
}

// Error implements the error interface.
func (e *BufferError) Error() string {
	return fmt.Sprintf("text.%s: cannot hold %d bytes: %v", e.Op, e.Requested, e.Err)
}

// Unwrap makes errors.Is(err, ErrOutOfMemory) work.
func (e *BufferError) Unwrap() error {
	return e.Err
}

func errAlloc(op string, n int, cause error) error {
	err := ErrOutOfMemory
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrOutOfMemory, cause)
	}
	tracer().Errorf("text.%s: allocation of %d bytes failed", op, n)
	return &BufferError{Op: op, Requested: n, Err: err}
}
