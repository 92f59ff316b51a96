package legacy

import (
	"fmt"
	"time"

	"donorboard/internal/domain"
	"donorboard/internal/identity"
)

// ExportRow is one leaderboard line as exported by the prior system.
type ExportRow struct {
	Key             string              `json:"key"`
	Kind            domain.SnapshotKind `json:"kind"`
	TotalAmount     int64               `json:"total_amount"`
	DonationsCount  int                 `json:"donations_count"`
	FirstDonationAt *time.Time          `json:"first_donation_at"`
}

// ImportResult holds the snapshot rows built from an export, per kind.
type ImportResult struct {
	Rows    map[domain.SnapshotKind][]domain.LegacySnapshotRow
	Skipped []string
}

// BuildSnapshots maps export keys onto cohort labels, merges rows that land on the same
// cohort and assigns 1-based positions in leaderboard order. Keys that are not a cohort
// are reported in Skipped.
func BuildSnapshots(organizationID int64, export []ExportRow) (ImportResult, error) {
	result := ImportResult{Rows: map[domain.SnapshotKind][]domain.LegacySnapshotRow{}}
	byKind := map[domain.SnapshotKind][]domain.AggregateRow{}
	kinds := make([]domain.SnapshotKind, 0, 2)

	for i, row := range export {
		if !row.Kind.Valid() {
			return ImportResult{}, fmt.Errorf("row %d: unknown kind %q", i, row.Kind)
		}
		if row.TotalAmount < 0 {
			return ImportResult{}, fmt.Errorf("row %d: negative total_amount", i)
		}
		label, ok := identity.NormalizeGraduateKey(row.Key)
		if !ok {
			result.Skipped = append(result.Skipped, row.Key)
			continue
		}
		if _, seen := byKind[row.Kind]; !seen {
			kinds = append(kinds, row.Kind)
		}
		byKind[row.Kind] = append(byKind[row.Kind], domain.AggregateRow{
			DonorLabel:      label,
			TotalAmount:     row.TotalAmount,
			DonationsCount:  row.DonationsCount,
			FirstDonationAt: row.FirstDonationAt,
		})
	}

	for _, kind := range kinds {
		merged := identity.MergeGraduateRows(byKind[kind], 0)
		rows := make([]domain.LegacySnapshotRow, 0, len(merged))
		for i, m := range merged {
			rows = append(rows, domain.LegacySnapshotRow{
				OrganizationID:  organizationID,
				Kind:            kind,
				Position:        i + 1,
				DonorLabel:      m.DonorLabel,
				TotalAmount:     m.TotalAmount,
				DonationsCount:  m.DonationsCount,
				FirstDonationAt: m.FirstDonationAt,
			})
		}
		result.Rows[kind] = rows
	}
	return result, nil
}
