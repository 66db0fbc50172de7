package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
	photoDomain "github.com/daristays/service-booking/internal/domain/photo"
)

// UploadProofRequest holds the data to upload a proof photo.
type UploadProofRequest struct {
	Stage    string `json:"stage" binding:"required"`
	PhotoURL string `json:"photo_url" binding:"required"`
	Caption  string `json:"caption"`
}

// ReviewProofRequest holds a moderator's verdict on a proof photo.
type ReviewProofRequest struct {
	Verdict string `json:"verdict" binding:"required"`
}

// ProofPhotoDTO is the API response representation of a proof photo.
type ProofPhotoDTO struct {
	ID                 uuid.UUID  `json:"id"`
	BookingID          uuid.UUID  `json:"booking_id"`
	UploadedBy         uuid.UUID  `json:"uploaded_by"`
	Stage              string     `json:"stage"`
	PhotoURL           string     `json:"photo_url"`
	Caption            string     `json:"caption"`
	UploadedAt         time.Time  `json:"uploaded_at"`
	VerificationStatus string     `json:"verification_status"`
	VerificationDueAt  time.Time  `json:"verification_due_at"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// PhotoService handles stay-condition proof photo use cases.
type PhotoService struct {
	repo     photoDomain.PhotoRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(repo photoDomain.PhotoRepository, bookings bookingDomain.BookingRepository, logger *zap.Logger) *PhotoService {
	return &PhotoService{repo: repo, bookings: bookings, logger: logger}
}

// UploadProof records a proof photo for a booking's check-in or check-out.
// Only the booking's host may upload, the matching stay event must have been
// recorded, and the upload must land inside the 5-hour proof window.
func (s *PhotoService) UploadProof(ctx context.Context, bookingID, uploaderID uuid.UUID, req UploadProofRequest) (*ProofPhotoDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.HostID() != uploaderID {
		return nil, domain.NewForbiddenError("only the property host can upload proof photos")
	}

	stage := photoDomain.ProofStage(req.Stage)
	var stageAt *time.Time
	switch stage {
	case photoDomain.StageCheckIn:
		stageAt = bk.ActualCheckIn()
	case photoDomain.StageCheckOut:
		stageAt = bk.ActualCheckOut()
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid proof stage: %s", req.Stage))
	}
	if stageAt == nil {
		return nil, domain.NewValidationError(fmt.Sprintf("booking has no recorded %s yet", stage))
	}

	proof, err := photoDomain.NewProofPhoto(bookingID, uploaderID, stage, req.PhotoURL, req.Caption, *stageAt, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, proof); err != nil {
		return nil, err
	}

	s.logger.Info("proof photo uploaded",
		zap.String("booking_id", bookingID.String()),
		zap.String("stage", req.Stage),
	)

	return toProofPhotoDTO(proof), nil
}

// GetBookingProofs returns all proof photos for a booking.
func (s *PhotoService) GetBookingProofs(ctx context.Context, bookingID uuid.UUID) ([]*ProofPhotoDTO, error) {
	photos, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ProofPhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toProofPhotoDTO(p)
	}
	return dtos, nil
}

// ReviewProof records a moderator verdict on a pending proof photo.
func (s *PhotoService) ReviewProof(ctx context.Context, photoID uuid.UUID, req ReviewProofRequest) (*ProofPhotoDTO, error) {
	proof, err := s.repo.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch req.Verdict {
	case "verify":
		err = proof.Verify(now)
	case "reject":
		err = proof.Reject(now)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("verdict must be verify or reject, got %q", req.Verdict))
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, proof); err != nil {
		return nil, err
	}

	return toProofPhotoDTO(proof), nil
}

func toProofPhotoDTO(p *photoDomain.ProofPhoto) *ProofPhotoDTO {
	return &ProofPhotoDTO{
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
