package photo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daristays/service-booking/internal/domain"
)

// UploadWindow is how long after the matching check-in/check-out timestamp a
// proof photo may still be uploaded.
const UploadWindow = 5 * time.Hour

// VerificationSLA is how long moderators have to verify an uploaded proof.
const VerificationSLA = 24 * time.Hour

// ProofStage identifies which stay event a proof photo documents.
type ProofStage string

const (
	StageCheckIn  ProofStage = "check_in"
	StageCheckOut ProofStage = "check_out"
)

// IsValid returns true if the proof stage is recognized.
func (s ProofStage) IsValid() bool {
	return s == StageCheckIn || s == StageCheckOut
}

// VerificationStatus is the moderation state of a proof photo.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// ProofPhoto is the aggregate root for stay-condition proof photos. Hosts
// upload them at check-in and check-out; they back the host's side of any
// later dispute.
type ProofPhoto struct {
	id                 uuid.UUID
	bookingID          uuid.UUID
	uploadedBy         uuid.UUID
	stage              ProofStage
	photoURL           string
	caption            string
	uploadedAt         time.Time
	verificationStatus VerificationStatus
	verificationDueAt  time.Time
	verifiedAt         *time.Time
	createdAt          time.Time
}

// NewProofPhoto creates a proof photo for a stay event. stageAt is the actual
// check-in or check-out time the photo documents; uploads more than
// UploadWindow after it are rejected.
func NewProofPhoto(bookingID, uploadedBy uuid.UUID, stage ProofStage, photoURL, caption string, stageAt, now time.Time) (*ProofPhoto, error) {
	if !stage.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid proof stage: %s", stage))
	}
	if photoURL == "" {
		return nil, domain.NewValidationError("photo URL is required")
	}
	deadline := stageAt.Add(UploadWindow)
	if now.After(deadline) {
		return nil, domain.NewWindowExpiredError(fmt.Sprintf("%s proof upload", stage), deadline)
	}

	at := now.UTC()
	return &ProofPhoto{
		id:                 uuid.New(),
		bookingID:          bookingID,
		uploadedBy:         uploadedBy,
		stage:              stage,
		photoURL:           photoURL,
		caption:            caption,
		uploadedAt:         at,
		verificationStatus: VerificationPending,
		verificationDueAt:  at.Add(VerificationSLA),
		createdAt:          at,
	}, nil
}

// Reconstruct rebuilds a ProofPhoto from persistence.
func Reconstruct(
	id, bookingID, uploadedBy uuid.UUID,
	stage ProofStage,
	photoURL, caption string,
	uploadedAt time.Time,
	verificationStatus VerificationStatus,
	verificationDueAt time.Time,
	verifiedAt *time.Time,
	createdAt time.Time,
) *ProofPhoto {
	return &ProofPhoto{
		id:                 id,
		bookingID:          bookingID,
		uploadedBy:         uploadedBy,
		stage:              stage,
		photoURL:           photoURL,
		caption:            caption,
		uploadedAt:         uploadedAt,
		verificationStatus: verificationStatus,
		verificationDueAt:  verificationDueAt,
		verifiedAt:         verifiedAt,
		createdAt:          createdAt,
	}
}

// Getters.
func (p *ProofPhoto) ID() uuid.UUID                          { return p.id }
func (p *ProofPhoto) BookingID() uuid.UUID                   { return p.bookingID }
func (p *ProofPhoto) UploadedBy() uuid.UUID                  { return p.uploadedBy }
func (p *ProofPhoto) Stage() ProofStage                      { return p.stage }
func (p *ProofPhoto) PhotoURL() string                       { return p.photoURL }
func (p *ProofPhoto) Caption() string                        { return p.caption }
func (p *ProofPhoto) UploadedAt() time.Time                  { return p.uploadedAt }
func (p *ProofPhoto) VerificationStatus() VerificationStatus { return p.verificationStatus }
func (p *ProofPhoto) VerificationDueAt() time.Time           { return p.verificationDueAt }
func (p *ProofPhoto) VerifiedAt() *time.Time                 { return p.verifiedAt }
func (p *ProofPhoto) CreatedAt() time.Time                   { return p.createdAt }

// Verify marks the proof as verified by a moderator.
func (p *ProofPhoto) Verify(now time.Time) error {
	return p.moderate(VerificationVerified, now)
}

// Reject marks the proof as rejected by a moderator.
func (p *ProofPhoto) Reject(now time.Time) error {
	return p.moderate(VerificationRejected, now)
}

func (p *ProofPhoto) moderate(status VerificationStatus, now time.Time) error {
	if p.verificationStatus != VerificationPending {
		return domain.NewInvalidStateError(string(p.verificationStatus), string(status))
	}
	at := now.UTC()
	p.verificationStatus = status
	p.verifiedAt = &at
	return nil
}

// VerificationOverdue reports whether the moderation SLA has lapsed without a
// verdict.
func (p *ProofPhoto) VerificationOverdue(now time.Time) bool {
	return p.verificationStatus == VerificationPending && now.After(p.verificationDueAt)
}
