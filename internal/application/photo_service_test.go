package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
	photoDomain "github.com/daristays/service-booking/internal/domain/photo"
)

// fakePhotoRepo is an in-memory PhotoRepository.
type fakePhotoRepo struct {
	photos map[uuid.UUID]*photoDomain.ProofPhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[uuid.UUID]*photoDomain.ProofPhoto)}
}

func (r *fakePhotoRepo) Save(_ context.Context, p *photoDomain.ProofPhoto) error {
	r.photos[p.ID()] = p
	return nil
}

func (r *fakePhotoRepo) FindByID(_ context.Context, id uuid.UUID) (*photoDomain.ProofPhoto, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.NewNotFoundError("ProofPhoto", id.String())
	}
	return p, nil
}

func (r *fakePhotoRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*photoDomain.ProofPhoto, error) {
	var out []*photoDomain.ProofPhoto
	for _, p := range r.photos {
		if p.BookingID() == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) Update(_ context.Context, p *photoDomain.ProofPhoto) error {
	if _, ok := r.photos[p.ID()]; !ok {
		return domain.NewNotFoundError("ProofPhoto", p.ID().String())
	}
	r.photos[p.ID()] = p
	return nil
}

type photoFixture struct {
	service  *PhotoService
	photos   *fakePhotoRepo
	bookings *fakeBookingRepo
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()
	photos := newFakePhotoRepo()
	bookings := newFakeBookingRepo()
	return &photoFixture{
		service:  NewPhotoService(photos, bookings, zap.NewNop()),
		photos:   photos,
		bookings: bookings,
	}
}

// seedCheckedOut stores a booking whose guest checked out an hour ago, inside
// the proof-upload window.
func (f *photoFixture) seedCheckedOut(t *testing.T) *bookingDomain.Booking {
	t.Helper()
	now := time.Now().UTC()
	bk, err := bookingDomain.NewBooking(
		uuid.New(), uuid.New(), uuid.New(),
		now.Add(24*time.Hour), now.Add(4*24*time.Hour),
		600000, nil, "TND", bookingDomain.PolicyModerate, now,
	)
	require.NoError(t, err)
	require.NoError(t, bk.Accept(bk.HostID(), ""))
	require.NoError(t, bk.InitiatePayment(bk.GuestID()))
	require.NoError(t, bk.RecordDeposit())
	require.NoError(t, bk.CheckIn(bk.HostID(), now.Add(-2*24*time.Hour)))
	require.NoError(t, bk.CheckOut(bk.HostID(), now.Add(-time.Hour)))
	require.NoError(t, f.bookings.Save(context.Background(), bk))
	return bk
}

func TestUploadProof(t *testing.T) {
	ctx := context.Background()

	t.Run("records a checkout proof for the host", func(t *testing.T) {
		f := newPhotoFixture(t)
		bk := f.seedCheckedOut(t)

		dto, err := f.service.UploadProof(ctx, bk.ID(), bk.HostID(), UploadProofRequest{
			Stage:    "check_out",
			PhotoURL: "https://cdn.daristays.tn/proofs/after.jpg",
			Caption:  "living room after departure",
		})
		require.NoError(t, err)
		assert.Equal(t, "check_out", dto.Stage)
		assert.Equal(t, "pending", dto.VerificationStatus)
		assert.WithinDuration(t, time.Now().UTC().Add(photoDomain.VerificationSLA), dto.VerificationDueAt, time.Minute)

		listed, err := f.service.GetBookingProofs(ctx, bk.ID())
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("only the host may upload", func(t *testing.T) {
		f := newPhotoFixture(t)
		bk := f.seedCheckedOut(t)

		_, err := f.service.UploadProof(ctx, bk.ID(), bk.GuestID(), UploadProofRequest{
			Stage:    "check_out",
			PhotoURL: "https://cdn.daristays.tn/proofs/after.jpg",
		})
		assert.True(t, domain.IsCode(err, domain.CodeForbidden))
	})

	t.Run("rejects uploads after the window closes", func(t *testing.T) {
		f := newPhotoFixture(t)
		bsf := &serviceFixture{repo: f.bookings}
		bk := bsf.seedDueBooking(t) // checked out 49 hours ago

		_, err := f.service.UploadProof(ctx, bk.ID(), bk.HostID(), UploadProofRequest{
			Stage:    "check_out",
			PhotoURL: "https://cdn.daristays.tn/proofs/after.jpg",
		})
		assert.True(t, domain.IsCode(err, domain.CodeWindowExpired))
	})

	t.Run("rejects a stage without a recorded stay event", func(t *testing.T) {
		f := newPhotoFixture(t)
		now := time.Now().UTC()
		bk, err := bookingDomain.NewBooking(
			uuid.New(), uuid.New(), uuid.New(),
			now.Add(24*time.Hour), now.Add(3*24*time.Hour),
			400000, nil, "TND", bookingDomain.PolicyFlexible, now,
		)
		require.NoError(t, err)
		require.NoError(t, f.bookings.Save(ctx, bk))

		_, err = f.service.UploadProof(ctx, bk.ID(), bk.HostID(), UploadProofRequest{
			Stage:    "check_in",
			PhotoURL: "https://cdn.daristays.tn/proofs/before.jpg",
		})
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("rejects an unknown stage", func(t *testing.T) {
		f := newPhotoFixture(t)
		bk := f.seedCheckedOut(t)

		_, err := f.service.UploadProof(ctx, bk.ID(), bk.HostID(), UploadProofRequest{
			Stage:    "mid_stay",
			PhotoURL: "https://cdn.daristays.tn/proofs/mid.jpg",
		})
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})
}

func TestReviewProof(t *testing.T) {
	ctx := context.Background()
	f := newPhotoFixture(t)
	bk := f.seedCheckedOut(t)

	uploaded, err := f.service.UploadProof(ctx, bk.ID(), bk.HostID(), UploadProofRequest{
		Stage:    "check_out",
		PhotoURL: "https://cdn.daristays.tn/proofs/after.jpg",
	})
	require.NoError(t, err)

	reviewed, err := f.service.ReviewProof(ctx, uploaded.ID, ReviewProofRequest{Verdict: "verify"})
	require.NoError(t, err)
	assert.Equal(t, "verified", reviewed.VerificationStatus)
	assert.NotNil(t, reviewed.VerifiedAt)

	// A verdict is final.
	_, err = f.service.ReviewProof(ctx, uploaded.ID, ReviewProofRequest{Verdict: "reject"})
	assert.True(t, domain.IsCode(err, domain.CodeInvalidState))

	_, err = f.service.ReviewProof(ctx, uploaded.ID, ReviewProofRequest{Verdict: "approve"})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	_, err = f.service.ReviewProof(ctx, uuid.New(), ReviewProofRequest{Verdict: "verify"})
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}
