package radar

import (
	"errors"
	"fmt"
)

// ErrMalformedSnapshot indicates a saved chart state that cannot be restored.
var ErrMalformedSnapshot = errors.New("radar: malformed snapshot")

// SnapshotError describes which field of a snapshot failed validation.
type SnapshotError struct {
	Field  string
	Reason string
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrMalformedSnapshot, e.Field, e.Reason)
}

func (e *SnapshotError) Unwrap() error {
	return ErrMalformedSnapshot
}
