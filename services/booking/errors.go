package booking

import "fmt"

// ValidationError reports a booking request rejected before any provider or
// store call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a booking id with no record in the primary store.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.BookingID)
}

// AlreadyCancelledError reports a cancellation attempt on a booking that is
// already cancelled.
type AlreadyCancelledError struct {
	BookingID string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("booking %s is already cancelled", e.BookingID)
}

// MissingReferenceError reports a cancellation attempt on a booking with no
// provider reference to cancel against.
type MissingReferenceError struct {
	BookingID string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("booking %s has no provider reference", e.BookingID)
}

// PrimaryStoreError wraps a failure of the authoritative store. Unlike
// mirror failures, it always fails the whole operation.
type PrimaryStoreError struct {
	Op  string
	Err error
}

func (e *PrimaryStoreError) Error() string {
	return fmt.Sprintf("primary store %s failed: %v", e.Op, e.Err)
}

func (e *PrimaryStoreError) Unwrap() error {
	return e.Err
}
