package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics shared across marketplace services.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
	TopicCatalogEvents = "catalog.events"
)

// Event types published on booking.events.
const (
	BookingRequested               = "booking.requested"
	BookingAccepted                = "booking.accepted"
	BookingDeclined                = "booking.declined"
	BookingConversationRequested   = "booking.conversation.requested"
	BookingDepositCaptureRequested = "booking.deposit_capture.requested"
	BookingDepositRecorded         = "booking.deposit.recorded"
	BookingCheckedIn               = "booking.checked_in"
	BookingCheckedOut              = "booking.checked_out"
	BookingCancelled               = "booking.cancelled"
	BookingDisputeFiled            = "booking.dispute.filed"
	BookingDisputeResolved         = "booking.dispute.resolved"
	BookingPayoutRequested         = "booking.payout.requested"
	BookingSettled                 = "booking.settled"
)

// Event types consumed from payment.events.
const (
	PaymentDepositCaptured = "payment.deposit.captured"
	PaymentAuthorized      = "payment.authorized"
	PaymentHeld            = "payment.held"
	PaymentPayoutCompleted = "payment.payout.completed"
)

// Event types consumed from catalog.events.
const (
	CatalogPropertyUpserted = "catalog.property.upserted"
)

// BookingRequestedEvent is published when a guest requests a stay.
type BookingRequestedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	GuestID       uuid.UUID `json:"guest_id"`
	HostID        uuid.UUID `json:"host_id"`
	PropertyID    uuid.UUID `json:"property_id"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	TotalPrice    int64     `json:"total_price"`
	DepositAmount int64     `json:"deposit_amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingRespondedEvent is published when the host accepts or declines.
type BookingRespondedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	GuestID       uuid.UUID `json:"guest_id"`
	HostID        uuid.UUID `json:"host_id"`
	PropertyID    uuid.UUID `json:"property_id"`
	Message       string    `json:"message,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ConversationRequestedEvent asks the messaging service to open or update the
// host/guest conversation for a property after a booking is accepted.
type ConversationRequestedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	HostID     uuid.UUID `json:"host_id"`
	PropertyID uuid.UUID `json:"property_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DepositCaptureRequestedEvent instructs the payment service to capture the
// deposit for a booking. Fire-and-forget; confirmation arrives on
// payment.events.
type DepositCaptureRequestedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	GuestID       uuid.UUID `json:"guest_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DepositRecordedEvent is published once the deposit capture is confirmed.
type DepositRecordedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	HostID     uuid.UUID `json:"host_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StayEvent is published on check-in and check-out.
type StayEvent struct {
	BookingID       uuid.UUID  `json:"booking_id"`
	BookingNumber   string     `json:"booking_number"`
	GuestID         uuid.UUID  `json:"guest_id"`
	HostID          uuid.UUID  `json:"host_id"`
	At              time.Time  `json:"at"`
	SettlementDueAt *time.Time `json:"settlement_due_at,omitempty"`
	OccurredAt      time.Time  `json:"occurred_at"`
}

// BookingCancelledEvent is published when a guest or host cancels.
type BookingCancelledEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	BookingNumber    string    `json:"booking_number"`
	CancelledBy      string    `json:"cancelled_by"`
	RefundAmount     int64     `json:"refund_amount"`
	RefundPercentage int       `json:"refund_percentage"`
	RefundReason     string    `json:"refund_reason"`
	Currency         string    `json:"currency"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// DisputeFiledEvent is published when a guest disputes a checked-out stay.
type DisputeFiledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	HostID     uuid.UUID `json:"host_id"`
	Reason     string    `json:"reason"`
	Deadline   time.Time `json:"deadline"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DisputeResolvedEvent is published when an admin closes a dispute.
type DisputeResolvedEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	Resolution   string    `json:"resolution"`
	RefundAmount int64     `json:"refund_amount"`
	Currency     string    `json:"currency"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// PayoutRequestedEvent instructs the payment service to release held funds to
// the host once the dispute window has closed.
type PayoutRequestedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	HostID        uuid.UUID `json:"host_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingSettledEvent is published when held funds are released to the host.
type BookingSettledEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	HostID        uuid.UUID `json:"host_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DepositCapturedEvent arrives from the payment service when a deposit
// capture succeeds.
type DepositCapturedEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentStateEvent arrives from the payment service for authorization and
// hold transitions.
type PaymentStateEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PayoutCompletedEvent arrives from the payment service when a host payout
// clears.
type PayoutCompletedEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	HostPayout  int64     `json:"host_payout"`
	PlatformFee int64     `json:"platform_fee"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PropertyUpsertedEvent arrives from the catalog service whenever a property
// is created or edited.
type PropertyUpsertedEvent struct {
	PropertyID         uuid.UUID `json:"property_id"`
	HostID             uuid.UUID `json:"host_id"`
	Title              string    `json:"title"`
	NightlyRate        int64     `json:"nightly_rate"`
	Currency           string    `json:"currency"`
	CancellationPolicy string    `json:"cancellation_policy"`
	Active             bool      `json:"active"`
	Version            int64     `json:"version"`
	OccurredAt         time.Time `json:"occurred_at"`
}
