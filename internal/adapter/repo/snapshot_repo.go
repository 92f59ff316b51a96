package repo

import (
	"context"
	"fmt"
	"time"

	"donorboard/internal/domain"
	"donorboard/internal/infra"
	"donorboard/internal/sqlinline"
)

// SnapshotRepositoryPG stores legacy leaderboard snapshots in PostgreSQL.
type SnapshotRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewSnapshotRepository creates a new SnapshotRepositoryPG.
func NewSnapshotRepository(sql infra.SQLExecutor) *SnapshotRepositoryPG {
	return &SnapshotRepositoryPG{sql: sql}
}

// HasOrganization reports whether any snapshot row exists for the organization.
func (r *SnapshotRepositoryPG) HasOrganization(ctx context.Context, organizationID int64) (bool, error) {
	var exists bool
	if err := r.sql.QueryRow(ctx, sqlinline.QLegacyHasOrganization, organizationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: check legacy organization: %w", domain.ErrDataSourceUnavailable, err)
	}
	return exists, nil
}

// Snapshot returns the rows of one snapshot ordered by position.
func (r *SnapshotRepositoryPG) Snapshot(ctx context.Context, organizationID int64, kind domain.SnapshotKind) ([]domain.LegacySnapshotRow, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QLegacySelectSnapshot, organizationID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: load legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	items := make([]domain.LegacySnapshotRow, 0)
	for rows.Next() {
		var (
			row       domain.LegacySnapshotRow
			storedKind string
		)
		if err := rows.Scan(&row.OrganizationID, &storedKind, &row.Position, &row.DonorLabel, &row.TotalAmount, &row.DonationsCount, &row.FirstDonationAt); err != nil {
			return nil, fmt.Errorf("%w: scan legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
		}
		row.Kind = domain.SnapshotKind(storedKind)
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
	}
	return items, nil
}

// Save replaces a snapshot in a single statement.
func (r *SnapshotRepositoryPG) Save(ctx context.Context, organizationID int64, kind domain.SnapshotKind, rows []domain.LegacySnapshotRow) error {
	positions := make([]int32, 0, len(rows))
	labels := make([]string, 0, len(rows))
	totals := make([]int64, 0, len(rows))
	counts := make([]int32, 0, len(rows))
	firsts := make([]*time.Time, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, int32(row.Position))
		labels = append(labels, row.DonorLabel)
		totals = append(totals, row.TotalAmount)
		counts = append(counts, int32(row.DonationsCount))
		firsts = append(firsts, row.FirstDonationAt)
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QLegacyReplaceSnapshot, organizationID, string(kind), positions, labels, totals, counts, firsts); err != nil {
		return fmt.Errorf("%w: save legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
	}
	return nil
}

var _ domain.SnapshotStore = (*SnapshotRepositoryPG)(nil)
