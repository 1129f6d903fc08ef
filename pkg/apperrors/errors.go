package apperrors

import "fmt"

// ValidationError means the client sent malformed or missing input.
// Maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced entity is absent or inactive.
// Maps to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotFound builds a NotFoundError from a format string.
func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means a sale requested more units than are in stock.
// The client may retry with an adjusted quantity. Maps to HTTP 409.
type ConflictError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (id %d): %d available, %d requested",
		e.ProductName, e.ProductID, e.Available, e.Requested)
}

// StorageError means a persisted document could not be read or written.
// Fatal for the request, maps to HTTP 500. The underlying cause is kept.
type StorageError struct {
	Collection string
	Op         string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for collection %q: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
