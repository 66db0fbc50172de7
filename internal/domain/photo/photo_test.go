package photo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daristays/service-booking/internal/domain"
)

func TestNewProofPhoto_UploadWindow(t *testing.T) {
	bookingID, hostID := uuid.New(), uuid.New()
	stageAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("inside the window", func(t *testing.T) {
		now := stageAt.Add(4*time.Hour + 59*time.Minute)
		proof, err := NewProofPhoto(bookingID, hostID, StageCheckIn, "https://cdn.example.com/p.jpg", "entry hall", stageAt, now)
		require.NoError(t, err)
		assert.Equal(t, VerificationPending, proof.VerificationStatus())
		assert.Equal(t, now.Add(VerificationSLA), proof.VerificationDueAt())
		assert.Equal(t, StageCheckIn, proof.Stage())
	})

	t.Run("past the window names the deadline", func(t *testing.T) {
		now := stageAt.Add(5*time.Hour + time.Minute)
		_, err := NewProofPhoto(bookingID, hostID, StageCheckOut, "https://cdn.example.com/p.jpg", "", stageAt, now)
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeWindowExpired))
		assert.Contains(t, err.Error(), stageAt.Add(UploadWindow).Format(time.RFC3339))
	})

	t.Run("invalid stage", func(t *testing.T) {
		_, err := NewProofPhoto(bookingID, hostID, "mid_stay", "https://cdn.example.com/p.jpg", "", stageAt, stageAt)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("missing URL", func(t *testing.T) {
		_, err := NewProofPhoto(bookingID, hostID, StageCheckIn, "", "", stageAt, stageAt)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})
}

func TestProofPhoto_Moderation(t *testing.T) {
	newProof := func(t *testing.T) *ProofPhoto {
		t.Helper()
		stageAt := time.Now().UTC()
		proof, err := NewProofPhoto(uuid.New(), uuid.New(), StageCheckOut, "https://cdn.example.com/p.jpg", "", stageAt, stageAt)
		require.NoError(t, err)
		return proof
	}

	t.Run("verify", func(t *testing.T) {
		proof := newProof(t)
		require.NoError(t, proof.Verify(time.Now().UTC()))
		assert.Equal(t, VerificationVerified, proof.VerificationStatus())
		assert.NotNil(t, proof.VerifiedAt())
	})

	t.Run("reject", func(t *testing.T) {
		proof := newProof(t)
		require.NoError(t, proof.Reject(time.Now().UTC()))
		assert.Equal(t, VerificationRejected, proof.VerificationStatus())
	})

	t.Run("verdict is final", func(t *testing.T) {
		proof := newProof(t)
		require.NoError(t, proof.Verify(time.Now().UTC()))
		err := proof.Reject(time.Now().UTC())
		assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	})

	t.Run("overdue flag", func(t *testing.T) {
		proof := newProof(t)
		assert.False(t, proof.VerificationOverdue(proof.VerificationDueAt().Add(-time.Minute)))
		assert.True(t, proof.VerificationOverdue(proof.VerificationDueAt().Add(time.Minute)))

		require.NoError(t, proof.Verify(time.Now().UTC()))
		assert.False(t, proof.VerificationOverdue(proof.VerificationDueAt().Add(time.Hour)))
	})
}
