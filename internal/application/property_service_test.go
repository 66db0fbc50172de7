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
	"github.com/daristays/service-booking/internal/events"
)

func catalogUpsert(propertyID, hostID uuid.UUID, version int64) events.PropertyUpsertedEvent {
	return events.PropertyUpsertedEvent{
		PropertyID:         propertyID,
		HostID:             hostID,
		Title:              "Medina riad with rooftop terrace",
		NightlyRate:        180000,
		Currency:           "TND",
		CancellationPolicy: "flexible",
		Active:             true,
		Version:            version,
		OccurredAt:         time.Now().UTC(),
	}
}

func TestApplyCatalogUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and updates the snapshot", func(t *testing.T) {
		repo := newFakePropertyRepo()
		service := NewPropertyService(repo, zap.NewNop())
		propertyID := uuid.New()
		hostID := uuid.New()

		require.NoError(t, service.ApplyCatalogUpsert(ctx, catalogUpsert(propertyID, hostID, 1)))

		dto, err := service.GetProperty(ctx, propertyID)
		require.NoError(t, err)
		assert.Equal(t, hostID, dto.HostID)
		assert.Equal(t, int64(180000), dto.NightlyRate)
		assert.Equal(t, "flexible", dto.CancellationPolicy)

		updated := catalogUpsert(propertyID, hostID, 2)
		updated.NightlyRate = 210000
		updated.Active = false
		require.NoError(t, service.ApplyCatalogUpsert(ctx, updated))

		dto, err = service.GetProperty(ctx, propertyID)
		require.NoError(t, err)
		assert.Equal(t, int64(210000), dto.NightlyRate)
		assert.False(t, dto.Active)
	})

	t.Run("drops stale and redelivered versions", func(t *testing.T) {
		repo := newFakePropertyRepo()
		service := NewPropertyService(repo, zap.NewNop())
		propertyID := uuid.New()
		hostID := uuid.New()

		require.NoError(t, service.ApplyCatalogUpsert(ctx, catalogUpsert(propertyID, hostID, 5)))

		// An older version arriving late must not clobber the newer snapshot.
		stale := catalogUpsert(propertyID, hostID, 3)
		stale.NightlyRate = 100000
		require.NoError(t, service.ApplyCatalogUpsert(ctx, stale))

		// Redelivery of the same version is also a no-op.
		redelivered := catalogUpsert(propertyID, hostID, 5)
		redelivered.NightlyRate = 100000
		require.NoError(t, service.ApplyCatalogUpsert(ctx, redelivered))

		dto, err := service.GetProperty(ctx, propertyID)
		require.NoError(t, err)
		assert.Equal(t, int64(180000), dto.NightlyRate)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		repo := newFakePropertyRepo()
		service := NewPropertyService(repo, zap.NewNop())

		bad := catalogUpsert(uuid.New(), uuid.New(), 1)
		bad.CancellationPolicy = "negotiable"
		err := service.ApplyCatalogUpsert(ctx, bad)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})
}

func TestGetHostProperties(t *testing.T) {
	ctx := context.Background()
	repo := newFakePropertyRepo()
	service := NewPropertyService(repo, zap.NewNop())
	hostID := uuid.New()

	require.NoError(t, service.ApplyCatalogUpsert(ctx, catalogUpsert(uuid.New(), hostID, 1)))
	require.NoError(t, service.ApplyCatalogUpsert(ctx, catalogUpsert(uuid.New(), hostID, 1)))
	require.NoError(t, service.ApplyCatalogUpsert(ctx, catalogUpsert(uuid.New(), uuid.New(), 1)))

	mine, err := service.GetHostProperties(ctx, hostID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
