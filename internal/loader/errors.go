package loader

import (
	"errors"
	"fmt"
)

// ErrMismatchedZip signals that the number of raw import names extracted
// from a module's source does not equal the number of modules loaded for
// it. It is a programming-invariant violation, not a user error.
var ErrMismatchedZip = errors.New("mismatched import/module counts")

// CycleError reports that loading an identifier would close a dependency
// cycle. It aborts the entire surrounding load; a cyclic request is never
// queued to wait for the in-flight load to finish.
type CycleError struct {
	// ID is the identifier whose load closed the cycle.
	ID string
	// Err carries the underlying graph error describing the edge.
	Err error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving module %q: %v", e.ID, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

// FetchError wraps a transport-layer failure for a fetch target.
type FetchError struct {
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	// The transport is opaque, so the message enumerates the plausible
	// causes as a diagnostic aid.
	return fmt.Sprintf("failed to fetch %q: the resource may not exist, or the transport may restrict access to it: %v", e.Target, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
