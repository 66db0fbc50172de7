package property

import (
	"time"

	"github.com/google/uuid"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
)

// Snapshot is the locally cached view of a property owned by the catalog
// service. The booking service never writes property data of its own; it only
// applies upserts consumed from the catalog event stream and reads the cache
// when a booking is requested.
type Snapshot struct {
	propertyID     uuid.UUID
	hostID         uuid.UUID
	title          string
	nightlyRate    int64
	currency       string
	policy         bookingDomain.CancellationPolicy
	active         bool
	catalogVersion int64
	updatedAt      time.Time
}

// NewSnapshot builds a validated property snapshot from a catalog upsert.
func NewSnapshot(
	propertyID, hostID uuid.UUID,
	title string,
	nightlyRate int64,
	currency string,
	policy bookingDomain.CancellationPolicy,
	active bool,
	catalogVersion int64,
) (*Snapshot, error) {
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError("property ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if nightlyRate <= 0 {
		return nil, domain.NewValidationError("nightly rate must be positive")
	}
	if !policy.IsValid() {
		return nil, domain.NewValidationError("invalid cancellation policy: " + string(policy))
	}

	return &Snapshot{
		propertyID:     propertyID,
		hostID:         hostID,
		title:          title,
		nightlyRate:    nightlyRate,
		currency:       currency,
		policy:         policy,
		active:         active,
		catalogVersion: catalogVersion,
		updatedAt:      time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Snapshot from persistence data (no validation).
func Reconstruct(
	propertyID, hostID uuid.UUID,
	title string,
	nightlyRate int64,
	currency string,
	policy bookingDomain.CancellationPolicy,
	active bool,
	catalogVersion int64,
	updatedAt time.Time,
) *Snapshot {
	return &Snapshot{
		propertyID:     propertyID,
		hostID:         hostID,
		title:          title,
		nightlyRate:    nightlyRate,
		currency:       currency,
		policy:         policy,
		active:         active,
		catalogVersion: catalogVersion,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

func (s *Snapshot) PropertyID() uuid.UUID                       { return s.propertyID }
func (s *Snapshot) HostID() uuid.UUID                           { return s.hostID }
func (s *Snapshot) Title() string                               { return s.title }
func (s *Snapshot) NightlyRate() int64                          { return s.nightlyRate }
func (s *Snapshot) Currency() string                            { return s.currency }
func (s *Snapshot) Policy() bookingDomain.CancellationPolicy    { return s.policy }
func (s *Snapshot) Active() bool                                { return s.active }
func (s *Snapshot) CatalogVersion() int64                       { return s.catalogVersion }
func (s *Snapshot) UpdatedAt() time.Time                        { return s.updatedAt }

// IsOwnedBy checks if the property belongs to the given host.
func (s *Snapshot) IsOwnedBy(hostID uuid.UUID) bool {
	return s.hostID == hostID
}

// Supersedes reports whether this snapshot is newer than the stored catalog
// version. Catalog events can be redelivered out of order.
func (s *Snapshot) Supersedes(storedVersion int64) bool {
	return s.catalogVersion > storedVersion
}

// PriceForNights returns the stay price for the given number of nights.
func (s *Snapshot) PriceForNights(nights int) int64 {
	return s.nightlyRate * int64(nights)
}
