package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when a write collides with existing state
// (duplicate review, second delivery confirmation, taken name)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when input validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrImmutableOrder is returned when a status or tracking mutation is
// attempted on an order that already has a delivery confirmation
type ErrImmutableOrder struct {
	OrderID string
}

func (e *ErrImmutableOrder) Error() string {
	return fmt.Sprintf("order %s is confirmed and can no longer be modified", e.OrderID)
}

// ErrRateLimited is returned when an IP or identifier exceeds an attempt limit
type ErrRateLimited struct {
	Message string
}

func (e *ErrRateLimited) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "too many attempts"
}
