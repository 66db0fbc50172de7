package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_AllowedTransitions(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusDeclined},
		{StatusPending, StatusCancelledByGuest},
		{StatusPending, StatusCancelledByHost},
		{StatusConfirmed, StatusAwaitingPayment},
		{StatusConfirmed, StatusDepositPaid},
		{StatusAwaitingPayment, StatusDepositPaid},
		{StatusAwaitingPayment, StatusPaymentAuthorized},
		{StatusDepositPaid, StatusCheckedIn},
		{StatusPaymentAuthorized, StatusPaymentHeld},
		{StatusPaymentAuthorized, StatusCheckedIn},
		{StatusPaymentHeld, StatusCheckedIn},
		{StatusPaymentHeld, StatusCancelledByGuest},
		{StatusCheckedIn, StatusCheckedOut},
		{StatusCheckedOut, StatusDisputeWindow},
		{StatusCheckedOut, StatusDisputed},
		{StatusDisputeWindow, StatusSettlementPending},
		{StatusDisputeWindow, StatusSettled},
		{StatusDisputeWindow, StatusDisputed},
		{StatusSettlementPending, StatusSettled},
		{StatusDisputed, StatusRefunded},
		{StatusDisputed, StatusSettled},
	}
	for _, tt := range allowed {
		assert.True(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}
}

func TestBookingStatus_ForbiddenTransitions(t *testing.T) {
	forbidden := []struct {
		from, to BookingStatus
	}{
		{StatusPending, StatusCheckedIn},
		{StatusPending, StatusSettled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusAwaitingPayment, StatusCheckedIn},
		{StatusDepositPaid, StatusDisputed},
		{StatusCheckedIn, StatusCancelledByGuest},
		{StatusCheckedIn, StatusCancelledByHost},
		{StatusCheckedIn, StatusDisputed},
		{StatusCheckedOut, StatusCheckedIn},
		{StatusSettlementPending, StatusDisputed},
		{StatusSettled, StatusDisputed},
		{StatusSettled, StatusRefunded},
		{StatusRefunded, StatusSettled},
		{StatusDeclined, StatusConfirmed},
		{StatusCancelledByGuest, StatusPending},
		{StatusDisputed, StatusDisputeWindow},
	}
	for _, tt := range forbidden {
		assert.False(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be forbidden", tt.from, tt.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	terminal := []BookingStatus{StatusSettled, StatusRefunded, StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	for _, s := range AllStatuses() {
		if s.IsTerminal() {
			continue
		}
		hasExit := false
		for _, target := range AllStatuses() {
			if s.CanTransitionTo(target) {
				hasExit = true
				break
			}
		}
		assert.True(t, hasExit, "non-terminal status %s must have an exit", s)
	}
}

func TestBookingStatus_Cancellable(t *testing.T) {
	cancellable := []BookingStatus{
		StatusPending, StatusConfirmed, StatusAwaitingPayment,
		StatusDepositPaid, StatusPaymentAuthorized, StatusPaymentHeld,
	}
	for _, s := range cancellable {
		assert.True(t, s.IsCancellable(), "%s should be cancellable", s)
	}

	notCancellable := []BookingStatus{
		StatusCheckedIn, StatusCheckedOut, StatusDisputeWindow,
		StatusSettlementPending, StatusSettled, StatusDisputed, StatusRefunded,
	}
	for _, s := range notCancellable {
		assert.False(t, s.IsCancellable(), "%s should not be cancellable", s)
	}
}

func TestBookingStatus_CountsAgainstAvailability(t *testing.T) {
	free := []BookingStatus{StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost, StatusRefunded}
	for _, s := range free {
		assert.False(t, s.CountsAgainstAvailability(), "%s should release the calendar", s)
	}

	blocking := []BookingStatus{StatusPending, StatusConfirmed, StatusDepositPaid, StatusCheckedIn, StatusDisputeWindow, StatusSettled}
	for _, s := range blocking {
		assert.True(t, s.CountsAgainstAvailability(), "%s should block the calendar", s)
	}
}

func TestBookingStatus_HasReached(t *testing.T) {
	assert.True(t, StatusCheckedIn.HasReached(StatusDepositPaid))
	assert.True(t, StatusSettled.HasReached(StatusPaymentHeld))
	assert.True(t, StatusDepositPaid.HasReached(StatusDepositPaid))

	assert.False(t, StatusAwaitingPayment.HasReached(StatusDepositPaid))
	// Branch statuses carry no lifecycle position.
	assert.False(t, StatusCancelledByGuest.HasReached(StatusDepositPaid))
	assert.False(t, StatusDisputed.HasReached(StatusDepositPaid))
	assert.False(t, StatusCheckedIn.HasReached(StatusRefunded))
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("dispute_window")
	require.NoError(t, err)
	assert.Equal(t, StatusDisputeWindow, status)

	_, err = ParseBookingStatus("delivered")
	assert.Error(t, err)
}
