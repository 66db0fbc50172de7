package booking

import (
	"fmt"
	"math"
	"time"
)

// CancellationPolicy is the refund rule set snapshotted from the property at
// booking time. Later policy edits on the property never change it.
type CancellationPolicy string

const (
	PolicyFlexible    CancellationPolicy = "flexible"
	PolicyModerate    CancellationPolicy = "moderate"
	PolicyStrict      CancellationPolicy = "strict"
	PolicySuperStrict CancellationPolicy = "super_strict"
)

// IsValid returns true if the cancellation policy is recognized.
func (p CancellationPolicy) IsValid() bool {
	switch p {
	case PolicyFlexible, PolicyModerate, PolicyStrict, PolicySuperStrict:
		return true
	}
	return false
}

// fullRefundCutoffDays returns the minimum days before check-in that still
// earns a guest a full refund, or -1 when no notice is ever enough.
func (p CancellationPolicy) fullRefundCutoffDays() int {
	switch p {
	case PolicyFlexible:
		return 1
	case PolicyModerate:
		return 5
	case PolicyStrict:
		return 14
	default:
		return -1
	}
}

// CancelActor identifies which party initiated a cancellation.
type CancelActor string

const (
	CancelledByGuest CancelActor = "guest"
	CancelledByHost  CancelActor = "host"
)

// IsValid returns true if the actor is recognized.
func (a CancelActor) IsValid() bool {
	return a == CancelledByGuest || a == CancelledByHost
}

// RefundQuote is the result of a refund calculation.
type RefundQuote struct {
	RefundPercentage int    `json:"refund_percentage"`
	RefundAmount     int64  `json:"refund_amount"`
	Reason           string `json:"reason"`
	DaysUntilCheckIn int    `json:"days_until_check_in"`
}

// CalculateRefund computes the refund owed for a cancellation. It is pure and
// side-effect-free; a 0% refund is a valid outcome, never an error.
//
// Host-initiated cancellations always refund the guest in full regardless of
// policy. Guest-initiated cancellations are refunded in full only when the
// policy's notice threshold is met, otherwise nothing is refunded.
func CalculateRefund(policy CancellationPolicy, depositPaid int64, checkInDate time.Time, cancelledBy CancelActor, now time.Time) (RefundQuote, error) {
	if !policy.IsValid() {
		return RefundQuote{}, fmt.Errorf("unknown cancellation policy: %s", policy)
	}
	if !cancelledBy.IsValid() {
		return RefundQuote{}, fmt.Errorf("unknown cancel actor: %s", cancelledBy)
	}
	if depositPaid < 0 {
		return RefundQuote{}, fmt.Errorf("deposit cannot be negative")
	}

	days := int(math.Floor(checkInDate.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}

	if cancelledBy == CancelledByHost {
		return RefundQuote{
			RefundPercentage: 100,
			RefundAmount:     depositPaid,
			Reason:           "host cancelled: guest is refunded in full",
			DaysUntilCheckIn: days,
		}, nil
	}

	cutoff := policy.fullRefundCutoffDays()
	if cutoff < 0 {
		return RefundQuote{
			RefundPercentage: 0,
			RefundAmount:     0,
			Reason:           fmt.Sprintf("%s policy: deposits are non-refundable", policy),
			DaysUntilCheckIn: days,
		}, nil
	}

	if days >= cutoff {
		return RefundQuote{
			RefundPercentage: 100,
			RefundAmount:     depositPaid,
			Reason:           fmt.Sprintf("%s policy: cancelled %d days before check-in (full refund at %d+ days)", policy, days, cutoff),
			DaysUntilCheckIn: days,
		}, nil
	}

	return RefundQuote{
		RefundPercentage: 0,
		RefundAmount:     0,
		Reason:           fmt.Sprintf("%s policy: cancelled %d days before check-in, under the %d-day notice required for a refund", policy, days, cutoff),
		DaysUntilCheckIn: days,
	}, nil
}
