package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daristays/service-booking/internal/domain"
	bookingDomain "github.com/daristays/service-booking/internal/domain/booking"
	propertyDomain "github.com/daristays/service-booking/internal/domain/property"
)

// PropertySnapshotModel is the GORM model for the property_snapshots table.
type PropertySnapshotModel struct {
	PropertyID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"size:200;not null"`
	NightlyRate    int64     `gorm:"not null"`
	Currency       string    `gorm:"not null;size:3;default:'TND'"`
	Policy         string    `gorm:"not null;size:20"`
	Active         bool      `gorm:"not null;default:true"`
	CatalogVersion int64     `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (PropertySnapshotModel) TableName() string { return "property_snapshots" }

// GormPropertyRepository implements SnapshotRepository using GORM.
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository.
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID retrieves a property snapshot by its catalog ID.
func (r *GormPropertyRepository) FindByID(ctx context.Context, propertyID uuid.UUID) (*propertyDomain.Snapshot, error) {
	var model PropertySnapshotModel
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Property", propertyID.String())
		}
		return nil, fmt.Errorf("failed to find property snapshot: %w", err)
	}
	return toPropertyDomain(&model), nil
}

// FindByHostID retrieves all snapshots for a host's properties.
func (r *GormPropertyRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*propertyDomain.Snapshot, error) {
	var models []PropertySnapshotModel
	if err := r.db.WithContext(ctx).Where("host_id = ?", hostID).Order("updated_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find host property snapshots: %w", err)
	}

	snapshots := make([]*propertyDomain.Snapshot, len(models))
	for i, m := range models {
		snapshots[i] = toPropertyDomain(&m)
	}
	return snapshots, nil
}

// Upsert inserts or replaces a property snapshot.
func (r *GormPropertyRepository) Upsert(ctx context.Context, snapshot *propertyDomain.Snapshot) error {
	model := toPropertyModel(snapshot)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert property snapshot: %w", err)
	}
	return nil
}

func toPropertyModel(s *propertyDomain.Snapshot) PropertySnapshotModel {
	return PropertySnapshotModel{
		PropertyID:     s.PropertyID(),
		HostID:         s.HostID(),
		Title:          s.Title(),
		NightlyRate:    s.NightlyRate(),
		Currency:       s.Currency(),
		Policy:         string(s.Policy()),
		Active:         s.Active(),
		CatalogVersion: s.CatalogVersion(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func toPropertyDomain(m *PropertySnapshotModel) *propertyDomain.Snapshot {
	return propertyDomain.Reconstruct(
		m.PropertyID,
		m.HostID,
		m.Title,
		m.NightlyRate,
		m.Currency,
		bookingDomain.CancellationPolicy(m.Policy),
		m.Active,
		m.CatalogVersion,
		m.UpdatedAt,
	)
}
