package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/daristays/service-booking/internal/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// depositShare is the fraction of the total price captured as deposit when no
// explicit override is given (20%).
const depositShare = 5

// Booking is the aggregate root for the booking domain. It owns the status
// state machine and is the single source of truth for what can happen next to
// a booking.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	guestID       uuid.UUID
	hostID        uuid.UUID
	propertyID    uuid.UUID

	checkInDate  time.Time
	checkOutDate time.Time

	totalPrice    int64
	depositAmount int64
	currency      string
	policy        CancellationPolicy
	status        BookingStatus
	paymentStatus PaymentStatus

	respondedAt     *time.Time
	hostResponse    string
	actualCheckIn   *time.Time
	actualCheckOut  *time.Time
	settlementDueAt *time.Time

	refundAmount   *int64
	refundReason   string
	disputeReason  *DisputeReason
	disputeDetail  string
	disputeFiledAt *time.Time
	resolution     *DisputeResolution

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "ST-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "ST-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=pending. The
// cancellation policy is snapshotted here so later edits on the property never
// change the refund terms of an existing booking.
func NewBooking(
	guestID, hostID, propertyID uuid.UUID,
	checkInDate, checkOutDate time.Time,
	totalPrice int64,
	depositOverride *int64,
	currency string,
	policy CancellationPolicy,
	now time.Time,
) (*Booking, error) {
	if guestID == uuid.Nil {
		return nil, domain.NewValidationError("guest ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError("property ID is required")
	}
	if !checkOutDate.After(checkInDate) {
		return nil, domain.NewValidationError("check-out date must be after check-in date")
	}
	if !checkInDate.After(now) {
		return nil, domain.NewValidationError("check-in date must be in the future")
	}
	if totalPrice <= 0 {
		return nil, domain.NewValidationError("total price must be positive")
	}
	if !policy.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid cancellation policy: %s", policy))
	}

	deposit := totalPrice / depositShare
	if depositOverride != nil {
		if *depositOverride <= 0 || *depositOverride > totalPrice {
			return nil, domain.NewValidationError("deposit override must be positive and not exceed the total price")
		}
		deposit = *depositOverride
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	created := time.Now().UTC()
	return &Booking{
		id:            uuid.New(),
		bookingNumber: bookingNumber,
		guestID:       guestID,
		hostID:        hostID,
		propertyID:    propertyID,
		checkInDate:   checkInDate,
		checkOutDate:  checkOutDate,
		totalPrice:    totalPrice,
		depositAmount: deposit,
		currency:      currency,
		policy:        policy,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		version:       1,
		createdAt:     created,
		updatedAt:     created,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	guestID, hostID, propertyID uuid.UUID,
	checkInDate, checkOutDate time.Time,
	totalPrice, depositAmount int64,
	currency string,
	policy CancellationPolicy,
	status BookingStatus,
	paymentStatus PaymentStatus,
	respondedAt *time.Time,
	hostResponse string,
	actualCheckIn, actualCheckOut, settlementDueAt *time.Time,
	refundAmount *int64,
	refundReason string,
	disputeReason *DisputeReason,
	disputeDetail string,
	disputeFiledAt *time.Time,
	resolution *DisputeResolution,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		bookingNumber:   bookingNumber,
		guestID:         guestID,
		hostID:          hostID,
		propertyID:      propertyID,
		checkInDate:     checkInDate,
		checkOutDate:    checkOutDate,
		totalPrice:      totalPrice,
		depositAmount:   depositAmount,
		currency:        currency,
		policy:          policy,
		status:          status,
		paymentStatus:   paymentStatus,
		respondedAt:     respondedAt,
		hostResponse:    hostResponse,
		actualCheckIn:   actualCheckIn,
		actualCheckOut:  actualCheckOut,
		settlementDueAt: settlementDueAt,
		refundAmount:    refundAmount,
		refundReason:    refundReason,
		disputeReason:   disputeReason,
		disputeDetail:   disputeDetail,
		disputeFiledAt:  disputeFiledAt,
		resolution:      resolution,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// GuestID returns the guest's user ID.
func (b *Booking) GuestID() uuid.UUID { return b.guestID }

// HostID returns the property host's user ID.
func (b *Booking) HostID() uuid.UUID { return b.hostID }

// PropertyID returns the booked property's ID.
func (b *Booking) PropertyID() uuid.UUID { return b.propertyID }

// CheckInDate returns the scheduled check-in date.
func (b *Booking) CheckInDate() time.Time { return b.checkInDate }

// CheckOutDate returns the scheduled check-out date.
func (b *Booking) CheckOutDate() time.Time { return b.checkOutDate }

// TotalPrice returns the total stay price in millimes.
func (b *Booking) TotalPrice() int64 { return b.totalPrice }

// DepositAmount returns the deposit amount in millimes.
func (b *Booking) DepositAmount() int64 { return b.depositAmount }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Policy returns the cancellation policy snapshotted at booking time.
func (b *Booking) Policy() CancellationPolicy { return b.policy }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaymentStatus returns the payment sub-status.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// RespondedAt returns the time the host responded to the request, or nil.
func (b *Booking) RespondedAt() *time.Time { return b.respondedAt }

// HostResponse returns the host's response message.
func (b *Booking) HostResponse() string { return b.hostResponse }

// ActualCheckIn returns the recorded check-in time, or nil.
func (b *Booking) ActualCheckIn() *time.Time { return b.actualCheckIn }

// ActualCheckOut returns the recorded check-out time, or nil.
func (b *Booking) ActualCheckOut() *time.Time { return b.actualCheckOut }

// SettlementDueAt returns the time held funds become releasable, or nil.
func (b *Booking) SettlementDueAt() *time.Time { return b.settlementDueAt }

// RefundAmount returns the refund amount in millimes, or nil if none computed.
func (b *Booking) RefundAmount() *int64 { return b.refundAmount }

// RefundReason returns the human-readable refund explanation.
func (b *Booking) RefundReason() string { return b.refundReason }

// DisputeReason returns the dispute reason code, or nil.
func (b *Booking) DisputeReason() *DisputeReason { return b.disputeReason }

// DisputeDetail returns the guest's dispute description.
func (b *Booking) DisputeDetail() string { return b.disputeDetail }

// DisputeFiledAt returns the time the dispute was filed, or nil.
func (b *Booking) DisputeFiledAt() *time.Time { return b.disputeFiledAt }

// Resolution returns the admin resolution of a dispute, or nil.
func (b *Booking) Resolution() *DisputeResolution { return b.resolution }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Nights returns the number of nights in the stay window.
func (b *Booking) Nights() int {
	return int(b.checkOutDate.Sub(b.checkInDate).Hours() / 24)
}

// DisputeDeadline returns the end of the dispute window, or nil before checkout.
func (b *Booking) DisputeDeadline() *time.Time {
	if b.actualCheckOut == nil {
		return nil
	}
	deadline := b.actualCheckOut.Add(DisputeWindowDuration)
	return &deadline
}

// --- Behavior ---

// Accept transitions the booking from pending to confirmed. Only the host of
// the booked property may respond.
func (b *Booking) Accept(hostID uuid.UUID, message string) error {
	if hostID != b.hostID {
		return domain.NewForbiddenError("only the property host can respond to this booking request")
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	now := time.Now().UTC()
	b.status = StatusConfirmed
	b.respondedAt = &now
	b.hostResponse = message
	b.updatedAt = now
	return nil
}

// Decline transitions the booking from pending to declined (terminal).
func (b *Booking) Decline(hostID uuid.UUID, message string) error {
	if hostID != b.hostID {
		return domain.NewForbiddenError("only the property host can respond to this booking request")
	}
	if !b.status.CanTransitionTo(StatusDeclined) {
		return domain.NewInvalidStateError(string(b.status), string(StatusDeclined))
	}
	now := time.Now().UTC()
	b.status = StatusDeclined
	b.respondedAt = &now
	b.hostResponse = message
	b.updatedAt = now
	return nil
}

// InitiatePayment marks the booking as awaiting the deposit capture.
func (b *Booking) InitiatePayment(guestID uuid.UUID) error {
	if guestID != b.guestID {
		return domain.NewForbiddenError("only the booking guest can initiate payment")
	}
	if !b.status.CanTransitionTo(StatusAwaitingPayment) {
		return domain.NewInvalidStateError(string(b.status), string(StatusAwaitingPayment))
	}
	b.status = StatusAwaitingPayment
	b.updatedAt = time.Now().UTC()
	return nil
}

// RecordDeposit marks the deposit as captured. Calling it on a booking at or
// past deposit_paid is a no-op success so redelivered capture events cannot
// double-apply or wedge a consumer.
func (b *Booking) RecordDeposit() error {
	if b.status.HasReached(StatusDepositPaid) {
		return nil
	}
	if !b.status.CanTransitionTo(StatusDepositPaid) {
		return domain.NewInvalidStateError(string(b.status), string(StatusDepositPaid))
	}
	b.status = StatusDepositPaid
	b.paymentStatus = PaymentPaid
	b.updatedAt = time.Now().UTC()
	return nil
}

// AuthorizePayment records a card authorization that has not yet been captured.
// Redelivery past payment_authorized is a no-op.
func (b *Booking) AuthorizePayment() error {
	if b.status.HasReached(StatusPaymentAuthorized) {
		return nil
	}
	if !b.status.CanTransitionTo(StatusPaymentAuthorized) {
		return domain.NewInvalidStateError(string(b.status), string(StatusPaymentAuthorized))
	}
	b.status = StatusPaymentAuthorized
	b.updatedAt = time.Now().UTC()
	return nil
}

// HoldPayment records that authorized funds are now held in escrow.
// Redelivery past payment_held is a no-op.
func (b *Booking) HoldPayment() error {
	if b.status.HasReached(StatusPaymentHeld) {
		return nil
	}
	if !b.status.CanTransitionTo(StatusPaymentHeld) {
		return domain.NewInvalidStateError(string(b.status), string(StatusPaymentHeld))
	}
	b.status = StatusPaymentHeld
	b.paymentStatus = PaymentPaid
	b.updatedAt = time.Now().UTC()
	return nil
}

// CheckIn records the guest's arrival. Only legal once the deposit is paid,
// authorized, or held.
func (b *Booking) CheckIn(hostID uuid.UUID, now time.Time) error {
	if hostID != b.hostID {
		return domain.NewForbiddenError("only the property host can record a check-in")
	}
	if !b.status.CanTransitionTo(StatusCheckedIn) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCheckedIn))
	}
	at := now.UTC()
	b.status = StatusCheckedIn
	b.actualCheckIn = &at
	b.updatedAt = at
	return nil
}

// CheckOut records the guest's departure and opens the dispute window: the
// settlement-due clock starts at checkout + 48h and held funds stay frozen
// until it elapses without a dispute.
func (b *Booking) CheckOut(hostID uuid.UUID, now time.Time) error {
	if hostID != b.hostID {
		return domain.NewForbiddenError("only the property host can record a check-out")
	}
	if !b.status.CanTransitionTo(StatusCheckedOut) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCheckedOut))
	}
	at := now.UTC()
	due := at.Add(DisputeWindowDuration)
	b.status = StatusDisputeWindow
	b.actualCheckOut = &at
	b.settlementDueAt = &due
	b.updatedAt = at
	return nil
}

// Cancel cancels the booking on behalf of the guest or host, computing the
// refund from the policy snapshotted at booking time. A checked-in stay can
// never be cancelled; the dispute flow is the only recourse after check-in.
func (b *Booking) Cancel(actor CancelActor, actorID uuid.UUID, now time.Time) error {
	if !actor.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("unknown cancel actor: %s", actor))
	}

	target := StatusCancelledByGuest
	if actor == CancelledByHost {
		target = StatusCancelledByHost
	}

	switch actor {
	case CancelledByGuest:
		if actorID != b.guestID {
			return domain.NewForbiddenError("only the booking guest can cancel as guest")
		}
	case CancelledByHost:
		if actorID != b.hostID {
			return domain.NewForbiddenError("only the property host can cancel as host")
		}
	}

	if !b.status.IsCancellable() {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}

	depositPaid := int64(0)
	if b.paymentStatus == PaymentPaid {
		depositPaid = b.depositAmount
	}

	quote, err := CalculateRefund(b.policy, depositPaid, b.checkInDate, actor, now)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}

	at := now.UTC()
	b.status = target
	b.refundAmount = &quote.RefundAmount
	b.refundReason = quote.Reason
	if quote.RefundAmount > 0 {
		b.paymentStatus = PaymentRefunded
	}
	b.updatedAt = at
	return nil
}

// FileDispute opens a dispute on a checked-out stay. Legal only inside the
// 48-hour window after the actual check-out; filing freezes settlement.
func (b *Booking) FileDispute(guestID uuid.UUID, reason DisputeReason, description string, now time.Time) error {
	if guestID != b.guestID {
		return domain.NewForbiddenError("only the booking guest can file a dispute")
	}
	if !b.status.CanTransitionTo(StatusDisputed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusDisputed))
	}
	if !reason.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("unknown dispute reason: %s", reason))
	}
	if len(description) < MinDisputeDescriptionLen {
		return domain.NewValidationError(fmt.Sprintf("dispute description must be at least %d characters", MinDisputeDescriptionLen))
	}
	deadline := b.DisputeDeadline()
	if deadline == nil {
		return domain.NewInvalidStateError(string(b.status), string(StatusDisputed))
	}
	if now.After(*deadline) {
		return domain.NewWindowExpiredError("dispute filing", *deadline)
	}

	at := now.UTC()
	b.status = StatusDisputed
	b.disputeReason = &reason
	b.disputeDetail = description
	b.disputeFiledAt = &at
	b.updatedAt = at
	return nil
}

// ResolveDispute closes a dispute with an admin verdict. guest_favor refunds
// the full deposit, host_favor settles with no refund, split refunds the given
// partial amount. This is the only way out of disputed.
func (b *Booking) ResolveDispute(resolution DisputeResolution, refundAmount *int64, now time.Time) error {
	if !resolution.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("unknown dispute resolution: %s", resolution))
	}
	if b.status != StatusDisputed {
		return domain.NewInvalidStateError(string(b.status), string(StatusRefunded))
	}

	at := now.UTC()
	switch resolution {
	case ResolutionGuestFavor:
		amount := b.depositAmount
		b.status = StatusRefunded
		b.refundAmount = &amount
		b.refundReason = "dispute resolved in guest's favor"
		b.paymentStatus = PaymentRefunded

	case ResolutionHostFavor:
		zero := int64(0)
		b.status = StatusSettled
		b.refundAmount = &zero
		b.refundReason = "dispute resolved in host's favor"

	case ResolutionSplit:
		if refundAmount == nil {
			return domain.NewValidationError("split resolution requires a refund amount")
		}
		if *refundAmount <= 0 || *refundAmount >= b.depositAmount {
			return domain.NewValidationError("split refund amount must be between zero and the deposit")
		}
		amount := *refundAmount
		b.status = StatusRefunded
		b.refundAmount = &amount
		b.refundReason = fmt.Sprintf("dispute resolved as split: %d of %d refunded", amount, b.depositAmount)
		b.paymentStatus = PaymentRefunded
	}

	b.resolution = &resolution
	b.updatedAt = at
	return nil
}

// RequestPayout moves a due booking into settlement_pending. The settlement
// sweep calls this once the dispute window has elapsed without a dispute.
func (b *Booking) RequestPayout(now time.Time) error {
	if !b.status.CanTransitionTo(StatusSettlementPending) {
		return domain.NewInvalidStateError(string(b.status), string(StatusSettlementPending))
	}
	if b.settlementDueAt == nil || now.Before(*b.settlementDueAt) {
		return domain.NewValidationError("settlement is not yet due")
	}
	b.status = StatusSettlementPending
	b.updatedAt = now.UTC()
	return nil
}

// Settle releases the held funds to the host (terminal).
func (b *Booking) Settle() error {
	if b.status == StatusSettled {
		return nil
	}
	if !b.status.CanTransitionTo(StatusSettled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusSettled))
	}
	b.status = StatusSettled
	b.updatedAt = time.Now().UTC()
	return nil
}

// OverlapsWith reports whether the stay window overlaps [checkIn, checkOut).
// Adjacent stays sharing a turnover day do not overlap.
func (b *Booking) OverlapsWith(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.checkOutDate) && checkOut.After(b.checkInDate)
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
