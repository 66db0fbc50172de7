package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusAwaitingPayment   BookingStatus = "awaiting_payment"
	StatusDepositPaid       BookingStatus = "deposit_paid"
	StatusPaymentAuthorized BookingStatus = "payment_authorized"
	StatusPaymentHeld       BookingStatus = "payment_held"
	StatusCheckedIn         BookingStatus = "checked_in"
	StatusCheckedOut        BookingStatus = "checked_out"
	StatusDisputeWindow     BookingStatus = "dispute_window"
	StatusSettlementPending BookingStatus = "settlement_pending"
	StatusSettled           BookingStatus = "settled"
	StatusDisputed          BookingStatus = "disputed"
	StatusRefunded          BookingStatus = "refunded"
	StatusDeclined          BookingStatus = "declined"
	StatusCancelledByGuest  BookingStatus = "cancelled_by_guest"
	StatusCancelledByHost   BookingStatus = "cancelled_by_host"
)

// validTransitions is the single authoritative state machine for booking
// status transitions. Disputes are only reachable after checkout; cancellation
// escapes end at the paid-but-not-checked-in boundary.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:           {StatusConfirmed, StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost},
	StatusConfirmed:         {StatusAwaitingPayment, StatusDepositPaid, StatusCancelledByGuest, StatusCancelledByHost},
	StatusAwaitingPayment:   {StatusDepositPaid, StatusPaymentAuthorized, StatusCancelledByGuest, StatusCancelledByHost},
	StatusDepositPaid:       {StatusCheckedIn, StatusCancelledByGuest, StatusCancelledByHost},
	StatusPaymentAuthorized: {StatusPaymentHeld, StatusCheckedIn, StatusCancelledByGuest, StatusCancelledByHost},
	StatusPaymentHeld:       {StatusCheckedIn, StatusCancelledByGuest, StatusCancelledByHost},
	StatusCheckedIn:         {StatusCheckedOut},
	StatusCheckedOut:        {StatusDisputeWindow, StatusDisputed},
	StatusDisputeWindow:     {StatusSettlementPending, StatusSettled, StatusDisputed},
	StatusSettlementPending: {StatusSettled},
	StatusDisputed:          {StatusRefunded, StatusSettled},
	StatusSettled:           {},
	StatusRefunded:          {},
	StatusDeclined:          {},
	StatusCancelledByGuest:  {},
	StatusCancelledByHost:   {},
}

// cancellableStatuses is the set of statuses a guest or host cancellation may
// leave from. Once a stay is checked in, the dispute flow is the only recourse.
var cancellableStatuses = map[BookingStatus]bool{
	StatusPending:           true,
	StatusConfirmed:         true,
	StatusAwaitingPayment:   true,
	StatusDepositPaid:       true,
	StatusPaymentAuthorized: true,
	StatusPaymentHeld:       true,
}

// lifecycleOrder ranks the forward (happy-path) statuses so redelivered
// payment events can be recognized as already applied. Branch statuses
// (declined, cancellations, disputed, refunded) carry no rank.
var lifecycleOrder = map[BookingStatus]int{
	StatusPending:           0,
	StatusConfirmed:         1,
	StatusAwaitingPayment:   2,
	StatusDepositPaid:       3,
	StatusPaymentAuthorized: 4,
	StatusPaymentHeld:       5,
	StatusCheckedIn:         6,
	StatusCheckedOut:        7,
	StatusDisputeWindow:     8,
	StatusSettlementPending: 9,
	StatusSettled:           10,
}

// HasReached returns true if this status is at or past the target on the
// forward lifecycle path. False when either side is a branch status.
func (s BookingStatus) HasReached(target BookingStatus) bool {
	current, ok := lifecycleOrder[s]
	if !ok {
		return false
	}
	wanted, ok := lifecycleOrder[target]
	if !ok {
		return false
	}
	return current >= wanted
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// IsCancellable returns true if the booking can still be cancelled from this status.
func (s BookingStatus) IsCancellable() bool {
	return cancellableStatuses[s]
}

// CountsAgainstAvailability returns true if a booking in this status blocks
// the property's calendar for its stay window.
func (s BookingStatus) CountsAgainstAvailability() bool {
	switch s {
	case StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost, StatusRefunded:
		return false
	}
	return true
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// AllStatuses returns every recognized booking status. Useful for exhaustive
// transition checks and admin filters.
func AllStatuses() []BookingStatus {
	statuses := make([]BookingStatus, 0, len(validTransitions))
	for s := range validTransitions {
		statuses = append(statuses, s)
	}
	return statuses
}

// PaymentStatus tracks the money side of a booking independently of its
// lifecycle status: a booking can be checked_out while payment is still paid,
// awaiting settlement.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValid returns true if the payment status is recognized.
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
