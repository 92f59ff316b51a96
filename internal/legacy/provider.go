// Package legacy serves precomputed leaderboards for organizations migrated from the
// prior system.
package legacy

import (
	"context"
	"sort"

	"donorboard/internal/domain"
)

// Provider answers legacy report queries from a SnapshotStore.
type Provider struct {
	Store domain.SnapshotStore
}

// NewProvider wraps store.
func NewProvider(store domain.SnapshotStore) *Provider {
	return &Provider{Store: store}
}

// IsForOrganization reports whether any snapshot was imported for the organization.
func (p *Provider) IsForOrganization(ctx context.Context, organizationID int64) (bool, error) {
	return p.Store.HasOrganization(ctx, organizationID)
}

// TopOneTimeByGraduation returns the graduation leaderboard snapshot, at most limit rows.
func (p *Provider) TopOneTimeByGraduation(ctx context.Context, organizationID int64, limit int) ([]domain.LegacySnapshotRow, error) {
	rows, err := p.snapshot(ctx, organizationID, domain.SnapshotOneTimeGraduation)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// TopRecurring returns the full recurring leaderboard snapshot.
func (p *Provider) TopRecurring(ctx context.Context, organizationID int64) ([]domain.LegacySnapshotRow, error) {
	return p.snapshot(ctx, organizationID, domain.SnapshotRecurring)
}

func (p *Provider) snapshot(ctx context.Context, organizationID int64, kind domain.SnapshotKind) ([]domain.LegacySnapshotRow, error) {
	rows, err := p.Store.Snapshot(ctx, organizationID, kind)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows, nil
}

var _ domain.LegacyDataProvider = (*Provider)(nil)
