package booking

import "fmt"

// FlowError is a synchronous precondition violation on a lifecycle operation.
// Callers can recover by routing the user to the missing step.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrNoActiveBooking is returned when a lifecycle operation is invoked
	// with no current booking.
	ErrNoActiveBooking = &FlowError{Code: "noActiveBooking", Message: "no active booking"}

	// ErrIncompleteBooking is returned when ConfirmBooking is invoked before
	// ride, officer and payment method have all been selected.
	ErrIncompleteBooking = &FlowError{Code: "incompleteBooking", Message: "ride, officer and payment method must be selected before confirming"}

	// ErrInvalidLocation is returned when StartBooking is given a pickup or
	// destination without coordinates.
	ErrInvalidLocation = &FlowError{Code: "invalidLocation", Message: "pickup and destination must carry coordinates"}

	// ErrBookingSettled is returned when ConfirmBooking is invoked on a booking
	// that has already reached a terminal status. A payment_failed booking is
	// exempt: the user may retry payment.
	ErrBookingSettled = &FlowError{Code: "bookingSettled", Message: "booking has already been settled"}
)

// PersistenceError wraps a failed write of the primary booking record. The
// operation that produced it was aborted and in-memory state left unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
