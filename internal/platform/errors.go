package platform

import (
	"errors"
	"fmt"
)

// Failure kinds reported while bringing the presentation stack up. None of
// them is retried.
var (
	ErrSubsystemInit    = errors.New("subsystem init failed")
	ErrResourceCreation = errors.New("resource creation failed")
	ErrAllocation       = errors.New("allocation failed")
)

// SetupError names the resource that could not be brought up and why.
// errors.Is matches both the kind and the underlying cause.
type SetupError struct {
	Kind     error
	Resource string
	Err      error
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Resource, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Resource, e.Kind, e.Err)
}

func (e *SetupError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func SubsystemInitError(resource string, err error) error {
	return &SetupError{Kind: ErrSubsystemInit, Resource: resource, Err: err}
}

func ResourceCreationError(resource string, err error) error {
	return &SetupError{Kind: ErrResourceCreation, Resource: resource, Err: err}
}

func AllocationError(resource string, err error) error {
	return &SetupError{Kind: ErrAllocation, Resource: resource, Err: err}
}
