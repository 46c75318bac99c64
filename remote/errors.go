package remote

import (
	"errors"
	"fmt"
)

// ErrIndexNotFound is returned by DeleteIndex and GetIndexSchema when the
// named index does not exist. Deleting an already-absent index is not a fault.
var ErrIndexNotFound = errors.New("remote: index not found")

// TransientError wraps a network or availability fault that survived the
// bounded retry budget. Callers may re-run the whole operation; the client
// itself will not retry further.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("remote: transient failure in %s (retries exhausted): %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError wraps a fault that retrying cannot fix: unreachable endpoint,
// rejected credentials, or a malformed response. It aborts the surrounding
// operation immediately; no partial profile or schema is returned alongside it.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("remote: fatal failure in %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// IsNotFoundError checks if the error is an index-not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrIndexNotFound)
}

// IsTransientError checks if the error is an exhausted transient failure.
func IsTransientError(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsFatalError checks if the error is a fatal remote failure.
func IsFatalError(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
