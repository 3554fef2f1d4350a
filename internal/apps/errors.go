// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrCancelled is returned when the user dismisses a selection prompt.
	ErrCancelled = errors.New("selection cancelled")
	// ErrPersistence is the sentinel error wrapped by PersistenceError.
	ErrPersistence = errors.New("persistence failure")
	// ErrNoTerminal is returned when no terminal emulator can be determined.
	ErrNoTerminal = errors.New("no terminal emulator found")
)

type (
	// NotFoundError is returned when no handler resolves for a MIME type, or
	// when a handler's desktop entry cannot be located.
	NotFoundError struct {
		// Name is the MIME type or handler id that was looked up.
		Name string
	}

	// PersistenceError wraps filesystem failures while reading or writing the
	// override file or scanning application directories.
	PersistenceError struct {
		Op   string
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no handler found for %s", e.Name)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns both ErrPersistence and the underlying cause.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
