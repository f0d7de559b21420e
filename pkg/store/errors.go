package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row is absent or the ownership filter
// excludes it. Callers must be able to tell it apart from backend failures.
var ErrNotFound = errors.New("store: not found")

// StoreError wraps any transport or backend failure. The cause is kept
// intact for diagnostics and never retried at this layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
