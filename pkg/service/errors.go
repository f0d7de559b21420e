package service

import "fmt"

// ValidationError is rejected before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError covers an absent profile or link, including links the
// ownership filter hid from the caller.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// IntegrityError reports an observed violation of a uniqueness invariant.
// It is not expected in practice but must not be mistaken for a miss.
type IntegrityError struct {
	Detail string
}

func (e *IntegrityError) Error() string {
	return "integrity violation: " + e.Detail
}
