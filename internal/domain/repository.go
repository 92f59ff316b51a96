package domain

import (
	"context"
	"time"
)

// DonationFilter narrows CompletedDonations. Status is always "completed".
type DonationFilter struct {
	Scope Scope
	Since *time.Time
	// IDs restricts the result to the given donation ids when non-nil.
	IDs []int64
	// DonorID and DonorPhone select a single donor; they are OR-ed together.
	DonorID    *int64
	DonorPhone *string
}

// DonationSource reads completed donations.
type DonationSource interface {
	CompletedDonations(ctx context.Context, filter DonationFilter) ([]Donation, error)
}

// TransactionSource reads payment transaction metadata.
type TransactionSource interface {
	TransactionMetadata(ctx context.Context, ids []int64) ([]PaymentTransaction, error)
}

// UserSource reads registered users.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	UserPhotos(ctx context.Context, ids []int64) (map[int64]string, error)
}

// ScopeResolver checks that a scope exists and fills in its organization.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, scope Scope) (Scope, error)
}

// SnapshotStore persists legacy snapshot rows.
type SnapshotStore interface {
	HasOrganization(ctx context.Context, organizationID int64) (bool, error)
	Snapshot(ctx context.Context, organizationID int64, kind SnapshotKind) ([]LegacySnapshotRow, error)
	Save(ctx context.Context, organizationID int64, kind SnapshotKind, rows []LegacySnapshotRow) error
}

// LegacyDataProvider answers report queries for organizations migrated from the
// prior system. Empty results mean "compute live".
type LegacyDataProvider interface {
	IsForOrganization(ctx context.Context, organizationID int64) (bool, error)
	TopOneTimeByGraduation(ctx context.Context, organizationID int64, limit int) ([]LegacySnapshotRow, error)
	TopRecurring(ctx context.Context, organizationID int64) ([]LegacySnapshotRow, error)
}
