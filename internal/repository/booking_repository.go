package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingNumber string    `gorm:"uniqueIndex;not null;size:20"`
	GuestID       uuid.UUID `gorm:"type:uuid;index;not null"`
	HostID        uuid.UUID `gorm:"type:uuid;index;not null"`
	PropertyID    uuid.UUID `gorm:"type:uuid;index:idx_bookings_property_dates;not null"`

	CheckInDate  time.Time `gorm:"not null;index:idx_bookings_property_dates"`
	CheckOutDate time.Time `gorm:"not null;index:idx_bookings_property_dates"`

	TotalPrice    int64  `gorm:"not null"`
	DepositAmount int64  `gorm:"not null"`
	Currency      string `gorm:"not null;size:3;default:'TND'"`
	Policy        string `gorm:"not null;size:20"`
	Status        string `gorm:"not null;size:30;index"`
	PaymentStatus string `gorm:"not null;size:20;default:'pending'"`

	RespondedAt     *time.Time `gorm:""`
	HostResponse    string     `gorm:"size:500"`
	ActualCheckIn   *time.Time `gorm:""`
	ActualCheckOut  *time.Time `gorm:""`
	SettlementDueAt *time.Time `gorm:"index"`

	RefundAmount   *int64     `gorm:""`
	RefundReason   string     `gorm:"size:500"`
	DisputeReason  *string    `gorm:"size:40"`
	DisputeDetail  string     `gorm:"size:2000"`
	DisputeFiledAt *time.Time `gorm:""`
	Resolution     *string    `gorm:"size:20"`

	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByGuestID retrieves bookings for a specific guest with pagination.
func (r *GormBookingRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "guest_id = ?", guestID, page, limit)
}

// FindByHostID retrieves bookings for a specific host with pagination.
func (r *GormBookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "host_id = ?", hostID, page, limit)
}

func (r *GormBookingRepository) findPage(ctx context.Context, cond string, arg uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ExistsOverlapping reports whether any availability-holding booking on the
// property overlaps [checkIn, checkOut). Adjacent stays sharing a turnover day
// do not count as overlapping.
func (r *GormBookingRepository) ExistsOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	blocking := make([]string, 0, len(bookingDomain.AllStatuses()))
	for _, s := range bookingDomain.AllStatuses() {
		if s.CountsAgainstAvailability() {
			blocking = append(blocking, string(s))
		}
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", blocking).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// FindDueForSettlement retrieves bookings whose dispute window has elapsed
// without a dispute, oldest due first.
func (r *GormBookingRepository) FindDueForSettlement(ctx context.Context, now time.Time, limit int) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(bookingDomain.StatusDisputeWindow)).
		Where("settlement_due_at <= ?", now).
		Order("settlement_due_at ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings due for settlement: %w", err)
	}

	return toDomainBookings(models)
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the stored version matches version-1; IncrementVersion
	// has already been called on the aggregate.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":            model.Status,
			"payment_status":    model.PaymentStatus,
			"responded_at":      model.RespondedAt,
			"host_response":     model.HostResponse,
			"actual_check_in":   model.ActualCheckIn,
			"actual_check_out":  model.ActualCheckOut,
			"settlement_due_at": model.SettlementDueAt,
			"refund_amount":     model.RefundAmount,
			"refund_reason":     model.RefundReason,
			"dispute_reason":    model.DisputeReason,
			"dispute_detail":    model.DisputeDetail,
			"dispute_filed_at":  model.DisputeFiledAt,
			"resolution":        model.Resolution,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	var disputeReason *string
	if r := bk.DisputeReason(); r != nil {
		s := string(*r)
		disputeReason = &s
	}
	var resolution *string
	if r := bk.Resolution(); r != nil {
		s := string(*r)
		resolution = &s
	}

	return &BookingModel{
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
		DisputeReason:   disputeReason,
		DisputeDetail:   bk.DisputeDetail(),
		DisputeFiledAt:  bk.DisputeFiledAt(),
		Resolution:      resolution,
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	var disputeReason *bookingDomain.DisputeReason
	if m.DisputeReason != nil {
		r := bookingDomain.DisputeReason(*m.DisputeReason)
		disputeReason = &r
	}
	var resolution *bookingDomain.DisputeResolution
	if m.Resolution != nil {
		r := bookingDomain.DisputeResolution(*m.Resolution)
		resolution = &r
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.GuestID,
		m.HostID,
		m.PropertyID,
		m.CheckInDate,
		m.CheckOutDate,
		m.TotalPrice,
		m.DepositAmount,
		m.Currency,
		bookingDomain.CancellationPolicy(m.Policy),
		status,
		bookingDomain.PaymentStatus(m.PaymentStatus),
		m.RespondedAt,
		m.HostResponse,
		m.ActualCheckIn,
		m.ActualCheckOut,
		m.SettlementDueAt,
		m.RefundAmount,
		m.RefundReason,
		disputeReason,
		m.DisputeDetail,
		m.DisputeFiledAt,
		resolution,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
