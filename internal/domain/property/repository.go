package property

import (
	"context"

	"github.com/google/uuid"
)

// SnapshotRepository defines persistence operations for property snapshots.
type SnapshotRepository interface {
	FindByID(ctx context.Context, propertyID uuid.UUID) (*Snapshot, error)
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*Snapshot, error)
	Upsert(ctx context.Context, snapshot *Snapshot) error
}
