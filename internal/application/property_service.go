package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
	propertyDomain "github.com/daristays/service-booking/internal/domain/property"
	"github.com/daristays/service-booking/internal/events"
)

// PropertySnapshotDTO is the API representation of a cached property.
type PropertySnapshotDTO struct {
	PropertyID         uuid.UUID `json:"property_id"`
	HostID             uuid.UUID `json:"host_id"`
	Title              string    `json:"title"`
	NightlyRate        int64     `json:"nightly_rate"`
	Currency           string    `json:"currency"`
	CancellationPolicy string    `json:"cancellation_policy"`
	Active             bool      `json:"active"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PropertyService maintains the local property snapshot cache from catalog
// events and serves reads for the booking flow.
type PropertyService struct {
	repo   propertyDomain.SnapshotRepository
	logger *zap.Logger
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(repo propertyDomain.SnapshotRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{repo: repo, logger: logger}
}

// ApplyCatalogUpsert applies a property upsert from the catalog stream.
// Stale or redelivered events (catalog version not newer than stored) are
// dropped silently.
func (s *PropertyService) ApplyCatalogUpsert(ctx context.Context, evt events.PropertyUpsertedEvent) error {
	snapshot, err := propertyDomain.NewSnapshot(
		evt.PropertyID,
		evt.HostID,
		evt.Title,
		evt.NightlyRate,
		evt.Currency,
		bookingDomain.CancellationPolicy(evt.CancellationPolicy),
		evt.Active,
		evt.Version,
	)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, evt.PropertyID)
	if err != nil && !domain.IsCode(err, domain.CodeNotFound) {
		return err
	}
	if existing != nil && !snapshot.Supersedes(existing.CatalogVersion()) {
		s.logger.Debug("ignoring stale catalog upsert",
			zap.String("property_id", evt.PropertyID.String()),
			zap.Int64("version", evt.Version),
		)
		return nil
	}

	if err := s.repo.Upsert(ctx, snapshot); err != nil {
		return err
	}

	s.logger.Info("property snapshot updated",
		zap.String("property_id", evt.PropertyID.String()),
		zap.Int64("version", evt.Version),
	)
	return nil
}

// GetProperty returns the cached snapshot for a property.
func (s *PropertyService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertySnapshotDTO, error) {
	snapshot, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return toPropertyDTO(snapshot), nil
}

// GetHostProperties returns all cached snapshots for a host.
func (s *PropertyService) GetHostProperties(ctx context.Context, hostID uuid.UUID) ([]*PropertySnapshotDTO, error) {
	snapshots, err := s.repo.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*PropertySnapshotDTO, len(snapshots))
	for i, snap := range snapshots {
		dtos[i] = toPropertyDTO(snap)
	}
	return dtos, nil
}

func toPropertyDTO(s *propertyDomain.Snapshot) *PropertySnapshotDTO {
	return &PropertySnapshotDTO{
		PropertyID:         s.PropertyID(),
		HostID:             s.HostID(),
		Title:              s.Title(),
		NightlyRate:        s.NightlyRate(),
		Currency:           s.Currency(),
		CancellationPolicy: string(s.Policy()),
		Active:             s.Active(),
		UpdatedAt:          s.UpdatedAt(),
	}
}
