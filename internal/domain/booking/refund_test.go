package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRefund_GuestCancellations(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deposit := int64(120000)

	tests := []struct {
		name        string
		policy      CancellationPolicy
		checkIn     time.Time
		wantPercent int
		wantAmount  int64
	}{
		{
			name:        "flexible two days out is full refund",
			policy:      PolicyFlexible,
			checkIn:     now.Add(2 * 24 * time.Hour),
			wantPercent: 100,
			wantAmount:  deposit,
		},
		{
			name:        "flexible twelve hours out is no refund",
			policy:      PolicyFlexible,
			checkIn:     now.Add(12 * time.Hour),
			wantPercent: 0,
			wantAmount:  0,
		},
		{
			name:        "flexible exactly one day out is full refund",
			policy:      PolicyFlexible,
			checkIn:     now.Add(24 * time.Hour),
			wantPercent: 100,
			wantAmount:  deposit,
		},
		{
			name:        "moderate six days out is full refund",
			policy:      PolicyModerate,
			checkIn:     now.Add(6 * 24 * time.Hour),
			wantPercent: 100,
			wantAmount:  deposit,
		},
		{
			name:        "moderate four days out is no refund",
			policy:      PolicyModerate,
			checkIn:     now.Add(4 * 24 * time.Hour),
			wantPercent: 0,
			wantAmount:  0,
		},
		{
			name:        "strict twenty days out is full refund",
			policy:      PolicyStrict,
			checkIn:     now.Add(20 * 24 * time.Hour),
			wantPercent: 100,
			wantAmount:  deposit,
		},
		{
			name:        "strict ten days out is no refund",
			policy:      PolicyStrict,
			checkIn:     now.Add(10 * 24 * time.Hour),
			wantPercent: 0,
			wantAmount:  0,
		},
		{
			name:        "super strict never refunds",
			policy:      PolicySuperStrict,
			checkIn:     now.Add(90 * 24 * time.Hour),
			wantPercent: 0,
			wantAmount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := CalculateRefund(tt.policy, deposit, tt.checkIn, CancelledByGuest, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPercent, quote.RefundPercentage)
			assert.Equal(t, tt.wantAmount, quote.RefundAmount)
			assert.NotEmpty(t, quote.Reason)
		})
	}
}

func TestCalculateRefund_HostCancellationAlwaysFull(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deposit := int64(50000)

	for _, policy := range []CancellationPolicy{PolicyFlexible, PolicyModerate, PolicyStrict, PolicySuperStrict} {
		t.Run(string(policy), func(t *testing.T) {
			// Even an hour before check-in the host pays back everything.
			quote, err := CalculateRefund(policy, deposit, now.Add(time.Hour), CancelledByHost, now)
			require.NoError(t, err)
			assert.Equal(t, 100, quote.RefundPercentage)
			assert.Equal(t, deposit, quote.RefundAmount)
		})
	}
}

func TestCalculateRefund_DaysClampToZero(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Check-in already passed; days until check-in must not go negative.
	quote, err := CalculateRefund(PolicyFlexible, 10000, now.Add(-3*24*time.Hour), CancelledByGuest, now)
	require.NoError(t, err)
	assert.Equal(t, 0, quote.DaysUntilCheckIn)
	assert.Equal(t, 0, quote.RefundPercentage)
}

func TestCalculateRefund_ZeroDeposit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Nothing paid yet means nothing to refund, even on a full-refund outcome.
	quote, err := CalculateRefund(PolicyFlexible, 0, now.Add(10*24*time.Hour), CancelledByGuest, now)
	require.NoError(t, err)
	assert.Equal(t, 100, quote.RefundPercentage)
	assert.Equal(t, int64(0), quote.RefundAmount)
}

func TestCalculateRefund_Errors(t *testing.T) {
	now := time.Now().UTC()

	_, err := CalculateRefund("weekly", 1000, now.Add(24*time.Hour), CancelledByGuest, now)
	assert.Error(t, err)

	_, err = CalculateRefund(PolicyFlexible, 1000, now.Add(24*time.Hour), "platform", now)
	assert.Error(t, err)

	_, err = CalculateRefund(PolicyFlexible, -1, now.Add(24*time.Hour), CancelledByGuest, now)
	assert.Error(t, err)
}
