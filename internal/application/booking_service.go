package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
	propertyDomain "github.com/daristays/service-booking/internal/domain/property"
	"github.com/daristays/service-booking/internal/events"
	"github.com/daristays/service-booking/internal/kafka"
)

// RequestBookingRequest holds the data needed to request a new stay.
type RequestBookingRequest struct {
	PropertyID    uuid.UUID `json:"property_id" binding:"required"`
	CheckInDate   time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate  time.Time `json:"check_out_date" binding:"required"`
	TotalPrice    *int64    `json:"total_price"`
	DepositAmount *int64    `json:"deposit_amount"`
}

// RespondRequest holds the host's decision on a pending booking request.
type RespondRequest struct {
	Decision string `json:"decision" binding:"required"`
	Message  string `json:"message"`
}

// FileDisputeRequest holds a guest's dispute filing.
type FileDisputeRequest struct {
	ReasonCode  string `json:"reason_code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ResolveDisputeRequest holds an admin's dispute verdict.
type ResolveDisputeRequest struct {
	Resolution   string `json:"resolution" binding:"required"`
	RefundAmount *int64 `json:"refund_amount"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	BookingNumber   string     `json:"booking_number"`
	GuestID         uuid.UUID  `json:"guest_id"`
	HostID          uuid.UUID  `json:"host_id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	CheckInDate     time.Time  `json:"check_in_date"`
	CheckOutDate    time.Time  `json:"check_out_date"`
	TotalPrice      int64      `json:"total_price"`
	DepositAmount   int64      `json:"deposit_amount"`
	Currency        string     `json:"currency"`
	Policy          string     `json:"cancellation_policy"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	HostResponse    string     `json:"host_response,omitempty"`
	ActualCheckIn   *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut  *time.Time `json:"actual_check_out,omitempty"`
	SettlementDueAt *time.Time `json:"settlement_due_at,omitempty"`
	RefundAmount    *int64     `json:"refund_amount,omitempty"`
	RefundReason    string     `json:"refund_reason,omitempty"`
	DisputeReason   string     `json:"dispute_reason,omitempty"`
	DisputeDetail   string     `json:"dispute_detail,omitempty"`
	DisputeFiledAt  *time.Time `json:"dispute_filed_at,omitempty"`
	Resolution      string     `json:"resolution,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// EventPublisher publishes CloudEvents to a topic. Satisfied by kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// BookingService is the application service orchestrating the booking
// lifecycle, dispute workflow and settlement.
type BookingService struct {
	repo       bookingDomain.BookingRepository
	properties propertyDomain.SnapshotRepository
	producer   EventPublisher
	logger     *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	properties propertyDomain.SnapshotRepository,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:       repo,
		properties: properties,
		producer:   producer,
		logger:     logger,
	}
}

// RequestBooking creates a pending booking for the guest. The property's host,
// currency and cancellation policy are resolved from the catalog snapshot and
// copied onto the booking.
func (s *BookingService) RequestBooking(ctx context.Context, guestID uuid.UUID, req RequestBookingRequest) (*BookingDTO, error) {
	prop, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.Active() {
		return nil, domain.NewValidationError("property is not currently bookable")
	}
	if prop.IsOwnedBy(guestID) {
		return nil, domain.NewValidationError("hosts cannot book their own property")
	}

	now := time.Now().UTC()

	totalPrice := int64(0)
	if req.TotalPrice != nil {
		totalPrice = *req.TotalPrice
	} else if req.CheckOutDate.After(req.CheckInDate) {
		nights := int(req.CheckOutDate.Sub(req.CheckInDate).Hours() / 24)
		totalPrice = prop.PriceForNights(nights)
	}

	bk, err := bookingDomain.NewBooking(
		guestID,
		prop.HostID(),
		req.PropertyID,
		req.CheckInDate,
		req.CheckOutDate,
		totalPrice,
		req.DepositAmount,
		prop.Currency(),
		prop.Policy(),
		now,
	)
	if err != nil {
		return nil, err
	}

	overlaps, err := s.repo.ExistsOverlapping(ctx, req.PropertyID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if overlaps {
		return nil, domain.NewValidationError("requested dates overlap an existing booking for this property")
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, bk.ID().String(), events.BookingRequestedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		GuestID:       bk.GuestID(),
		HostID:        bk.HostID(),
		PropertyID:    bk.PropertyID(),
		CheckInDate:   bk.CheckInDate(),
		CheckOutDate:  bk.CheckOutDate(),
		TotalPrice:    bk.TotalPrice(),
		DepositAmount: bk.DepositAmount(),
		Currency:      bk.Currency(),
		OccurredAt:    time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RespondToRequest records the host's accept/decline decision on a pending
// request. Accepting also asks the messaging service to open the host/guest
// conversation for the property.
func (s *BookingService) RespondToRequest(ctx context.Context, bookingID, hostID uuid.UUID, req RespondRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch req.Decision {
	case "accept":
		if err := bk.Accept(hostID, req.Message); err != nil {
			return nil, err
		}
	case "decline":
		if err := bk.Decline(hostID, req.Message); err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("decision must be accept or decline, got %q", req.Decision))
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	responded := events.BookingRespondedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		GuestID:       bk.GuestID(),
		HostID:        bk.HostID(),
		PropertyID:    bk.PropertyID(),
		Message:       req.Message,
		OccurredAt:    time.Now().UTC(),
	}

	if req.Decision == "accept" {
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingAccepted, bk.ID().String(), responded)
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConversationRequested, bk.ID().String(), events.ConversationRequestedEvent{
			BookingID:  bk.ID(),
			GuestID:    bk.GuestID(),
			HostID:     bk.HostID(),
			PropertyID: bk.PropertyID(),
			OccurredAt: time.Now().UTC(),
		})
	} else {
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDeclined, bk.ID().String(), responded)
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// InitiatePayment moves a confirmed booking to awaiting_payment and publishes
// the deposit-capture instruction for the payment service.
func (s *BookingService) InitiatePayment(ctx context.Context, bookingID, guestID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.InitiatePayment(guestID); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDepositCaptureRequested, bk.ID().String(), events.DepositCaptureRequestedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		GuestID:       bk.GuestID(),
		Amount:        bk.DepositAmount(),
		Currency:      bk.Currency(),
		OccurredAt:    time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RecordDeposit marks the deposit as captured. Re-delivery of the capture
// confirmation is a no-op success: no second update, no second event.
func (s *BookingService) RecordDeposit(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	before := bk.Status()
	if err := bk.RecordDeposit(); err != nil {
		return nil, err
	}

	// Redelivered capture: nothing moved, so no write and no event.
	if bk.Status() == before {
		result := toBookingDTO(bk)
		return &result, nil
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDepositRecorded, bk.ID().String(), events.DepositRecordedEvent{
		BookingID:  bk.ID(),
		GuestID:    bk.GuestID(),
		HostID:     bk.HostID(),
		Amount:     bk.DepositAmount(),
		Currency:   bk.Currency(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// AuthorizePayment records a card authorization reported by the payment service.
func (s *BookingService) AuthorizePayment(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.applyPaymentTransition(ctx, bookingID, func(bk *bookingDomain.Booking) error {
		return bk.AuthorizePayment()
	})
}

// HoldPayment records an escrow hold reported by the payment service.
func (s *BookingService) HoldPayment(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.applyPaymentTransition(ctx, bookingID, func(bk *bookingDomain.Booking) error {
		return bk.HoldPayment()
	})
}

func (s *BookingService) applyPaymentTransition(ctx context.Context, bookingID uuid.UUID, apply func(*bookingDomain.Booking) error) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	before := bk.Status()
	if err := apply(bk); err != nil {
		return nil, err
	}

	if bk.Status() != before {
		bk.IncrementVersion()
		if err := s.repo.Update(ctx, bk); err != nil {
			return nil, err
		}
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// CheckIn records the guest's arrival at the property.
func (s *BookingService) CheckIn(ctx context.Context, bookingID, hostID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.CheckIn(hostID, time.Now().UTC()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCheckedIn, bk.ID().String(), events.StayEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		GuestID:       bk.GuestID(),
		HostID:        bk.HostID(),
		At:            *bk.ActualCheckIn(),
		OccurredAt:    time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// CheckOut records the guest's departure and opens the dispute window. The
// escrow hold-and-release clock starts here.
func (s *BookingService) CheckOut(ctx context.Context, bookingID, hostID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.CheckOut(hostID, time.Now().UTC()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCheckedOut, bk.ID().String(), events.StayEvent{
		BookingID:       bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		GuestID:         bk.GuestID(),
		HostID:          bk.HostID(),
		At:              *bk.ActualCheckOut(),
		SettlementDueAt: bk.SettlementDueAt(),
		OccurredAt:      time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a not-yet-checked-in booking on behalf of the guest or
// host and records the computed refund.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, actorRole string, actorID uuid.UUID) (*BookingDTO, error) {
	actor := bookingDomain.CancelActor(actorRole)
	if !actor.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("cancel actor must be guest or host, got %q", actorRole))
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Cancel(actor, actorID, time.Now().UTC()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	refund := int64(0)
	if bk.RefundAmount() != nil {
		refund = *bk.RefundAmount()
	}
	percentage := 0
	if bk.DepositAmount() > 0 && refund > 0 {
		percentage = int(refund * 100 / bk.DepositAmount())
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, bk.ID().String(), events.BookingCancelledEvent{
		BookingID:        bk.ID(),
		BookingNumber:    bk.BookingNumber(),
		CancelledBy:      string(actor),
		RefundAmount:     refund,
		RefundPercentage: percentage,
		RefundReason:     bk.RefundReason(),
		Currency:         bk.Currency(),
		OccurredAt:       time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// FileDispute opens a dispute inside the 48-hour post-checkout window,
// freezing settlement for the booking.
func (s *BookingService) FileDispute(ctx context.Context, bookingID, guestID uuid.UUID, req FileDisputeRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	reason := bookingDomain.DisputeReason(req.ReasonCode)
	if err := bk.FileDispute(guestID, reason, req.Description, time.Now().UTC()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDisputeFiled, bk.ID().String(), events.DisputeFiledEvent{
		BookingID:  bk.ID(),
		GuestID:    bk.GuestID(),
		HostID:     bk.HostID(),
		Reason:     string(reason),
		Deadline:   *bk.DisputeDeadline(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ResolveDispute closes a dispute with an admin verdict; the only way out of
// the disputed status.
func (s *BookingService) ResolveDispute(ctx context.Context, bookingID uuid.UUID, req ResolveDisputeRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resolution := bookingDomain.DisputeResolution(req.Resolution)
	if err := bk.ResolveDispute(resolution, req.RefundAmount, time.Now().UTC()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	refund := int64(0)
	if bk.RefundAmount() != nil {
		refund = *bk.RefundAmount()
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingDisputeResolved, bk.ID().String(), events.DisputeResolvedEvent{
		BookingID:    bk.ID(),
		Resolution:   string(resolution),
		RefundAmount: refund,
		Currency:     bk.Currency(),
		OccurredAt:   time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// SettleDueBookings moves bookings whose dispute window elapsed without a
// dispute into settlement_pending and publishes the payout instruction for
// each. A booking that became disputed between the query and the write loses
// nothing: the conditional update fails and the booking is skipped.
// Returns the number of bookings moved.
func (s *BookingService) SettleDueBookings(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := s.repo.FindDueForSettlement(ctx, now, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to query due bookings: %w", err)
	}

	settled := 0
	for _, bk := range due {
		if err := bk.RequestPayout(now); err != nil {
			s.logger.Warn("skipping booking not eligible for payout",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
			continue
		}

		bk.IncrementVersion()
		if err := s.repo.Update(ctx, bk); err != nil {
			if domain.IsCode(err, domain.CodeConflict) {
				s.logger.Info("booking changed before settlement, skipping",
					zap.String("booking_id", bk.ID().String()),
				)
				continue
			}
			return settled, fmt.Errorf("failed to update booking %s: %w", bk.ID(), err)
		}

		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingPayoutRequested, bk.ID().String(), events.PayoutRequestedEvent{
			BookingID:     bk.ID(),
			BookingNumber: bk.BookingNumber(),
			HostID:        bk.HostID(),
			Amount:        bk.DepositAmount(),
			Currency:      bk.Currency(),
			OccurredAt:    time.Now().UTC(),
		})
		settled++
	}

	return settled, nil
}

// ConfirmSettlement finalizes a booking after the payment service confirms the
// host payout.
func (s *BookingService) ConfirmSettlement(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.Status() == bookingDomain.StatusSettled {
		result := toBookingDTO(bk)
		return &result, nil
	}

	if err := bk.Settle(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingSettled, bk.ID().String(), events.BookingSettledEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		HostID:        bk.HostID(),
		Amount:        bk.DepositAmount(),
		Currency:      bk.Currency(),
		OccurredAt:    time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetGuestBookings retrieves paginated bookings made by a guest.
func (s *BookingService) GetGuestBookings(ctx context.Context, guestID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByGuestID(ctx, guestID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetHostBookings retrieves paginated bookings on a host's properties.
func (s *BookingService) GetHostBookings(ctx context.Context, hostID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByHostID(ctx, hostID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	dto := BookingDTO{
		ID:              bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		GuestID:         bk.GuestID(),
		HostID:          bk.HostID(),
		PropertyID:      bk.PropertyID(),
		CheckInDate:     bk.CheckInDate(),
		CheckOutDate:    bk.CheckOutDate(),
		TotalPrice:      bk.TotalPrice(),
		DepositAmount:   bk.DepositAmount(),
		Currency:        bk.Currency(),
		Policy:          string(bk.Policy()),
		Status:          string(bk.Status()),
		PaymentStatus:   string(bk.PaymentStatus()),
		RespondedAt:     bk.RespondedAt(),
		HostResponse:    bk.HostResponse(),
		ActualCheckIn:   bk.ActualCheckIn(),
		ActualCheckOut:  bk.ActualCheckOut(),
		SettlementDueAt: bk.SettlementDueAt(),
		RefundAmount:    bk.RefundAmount(),
		RefundReason:    bk.RefundReason(),
		DisputeDetail:   bk.DisputeDetail(),
		DisputeFiledAt:  bk.DisputeFiledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
	if bk.DisputeReason() != nil {
		dto.DisputeReason = string(*bk.DisputeReason())
	}
	if bk.Resolution() != nil {
		dto.Resolution = string(*bk.Resolution())
	}
	return dto
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
