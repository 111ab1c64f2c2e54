package backend

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable is matched by every UnavailableError
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// HandleError reports a failure to build the handle of a backend kind.
// It aborts the whole Backend assembly.
type HandleError struct {
	Kind Kind
	Err  error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("failed to build %s backend: %v", e.Kind, e.Err)
}

func (e *HandleError) Unwrap() error {
	return e.Err
}

// UnavailableError reports an operation invoked on an empty slot. Kind is
// only meaningful when Configured is true.
type UnavailableError struct {
	Op         Operation
	Kind       Kind
	Configured bool
}

func (e *UnavailableError) Error() string {
	if e.Configured {
		return fmt.Sprintf("%s is not available for backend %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s is not available: no backend configured", e.Op)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrCapabilityUnavailable
}

// SaveCopyError reports a failed save of a sent message copy. The message
// itself was sent.
type SaveCopyError struct {
	Folder string
	Err    error
}

func (e *SaveCopyError) Error() string {
	return fmt.Sprintf("message sent but failed to save a copy to folder %s: %v", e.Folder, e.Err)
}

func (e *SaveCopyError) Unwrap() error {
	return e.Err
}
