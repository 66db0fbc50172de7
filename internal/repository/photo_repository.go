package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daristays/service-booking/internal/domain"
	photoDomain "github.com/daristays/service-booking/internal/domain/photo"
)

// PhotoModel is the GORM model for the proof_photos table.
type PhotoModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookingID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	UploadedBy         uuid.UUID  `gorm:"type:uuid;not null"`
	Stage              string     `gorm:"type:varchar(20);not null"`
	PhotoURL           string     `gorm:"type:text;not null"`
	Caption            string     `gorm:"type:text"`
	UploadedAt         time.Time  `gorm:"not null"`
	VerificationStatus string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	VerificationDueAt  time.Time  `gorm:"not null"`
	VerifiedAt         *time.Time `gorm:""`
	CreatedAt          time.Time  `gorm:"not null"`
}

// TableName sets the table name.
func (PhotoModel) TableName() string { return "proof_photos" }

// GormPhotoRepository implements PhotoRepository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Save persists a new proof photo.
func (r *GormPhotoRepository) Save(ctx context.Context, photo *photoDomain.ProofPhoto) error {
	model := toPhotoModel(photo)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save proof photo: %w", err)
	}
	return nil
}

// FindByID returns a single proof photo by ID.
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*photoDomain.ProofPhoto, error) {
	var model PhotoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ProofPhoto", id.String())
		}
		return nil, fmt.Errorf("failed to find proof photo: %w", err)
	}
	return toPhotoDomain(&model), nil
}

// FindByBookingID returns all proof photos for a booking.
func (r *GormPhotoRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*photoDomain.ProofPhoto, error) {
	var models []PhotoModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("uploaded_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking proof photos: %w", err)
	}

	photos := make([]*photoDomain.ProofPhoto, len(models))
	for i, m := range models {
		photos[i] = toPhotoDomain(&m)
	}
	return photos, nil
}

// Update persists a moderation verdict on an existing proof photo.
func (r *GormPhotoRepository) Update(ctx context.Context, photo *photoDomain.ProofPhoto) error {
	result := r.db.WithContext(ctx).
		Model(&PhotoModel{}).
		Where("id = ?", photo.ID()).
		Updates(map[string]interface{}{
			"verification_status": string(photo.VerificationStatus()),
			"verified_at":         photo.VerifiedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update proof photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("ProofPhoto", photo.ID().String())
	}
	return nil
}

func toPhotoModel(p *photoDomain.ProofPhoto) PhotoModel {
	return PhotoModel{
		ID:                 p.ID(),
		BookingID:          p.BookingID(),
		UploadedBy:         p.UploadedBy(),
		Stage:              string(p.Stage()),
		PhotoURL:           p.PhotoURL(),
		Caption:            p.Caption(),
		UploadedAt:         p.UploadedAt(),
		VerificationStatus: string(p.VerificationStatus()),
		VerificationDueAt:  p.VerificationDueAt(),
		VerifiedAt:         p.VerifiedAt(),
		CreatedAt:          p.CreatedAt(),
	}
}

func toPhotoDomain(m *PhotoModel) *photoDomain.ProofPhoto {
	return photoDomain.Reconstruct(
		m.ID,
		m.BookingID,
		m.UploadedBy,
		photoDomain.ProofStage(m.Stage),
		m.PhotoURL,
		m.Caption,
		m.UploadedAt,
		photoDomain.VerificationStatus(m.VerificationStatus),
		m.VerificationDueAt,
		m.VerifiedAt,
		m.CreatedAt,
	)
}
