package photo

import (
	"context"

	"github.com/google/uuid"
)

// PhotoRepository defines persistence operations for proof photos.
type PhotoRepository interface {
	Save(ctx context.Context, photo *ProofPhoto) error
	FindByID(ctx context.Context, id uuid.UUID) (*ProofPhoto, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*ProofPhoto, error)
	Update(ctx context.Context, photo *ProofPhoto) error
}
