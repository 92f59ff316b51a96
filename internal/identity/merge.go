package identity

import (
	"sort"

	"donorboard/internal/domain"
)

// MergeGraduateRows normalizes row labels into cohorts, drops rows that are not a
// cohort and sums totals and counts per cohort. The result is sorted by total
// descending; equal totals keep the order in which the cohort was first seen.
// A limit of zero or less keeps every cohort.
func MergeGraduateRows(rows []domain.AggregateRow, limit int) []domain.AggregateRow {
	index := make(map[string]int, len(rows))
	merged := make([]domain.AggregateRow, 0, len(rows))
	for _, row := range rows {
		label, ok := NormalizeGraduateLabel(row.DonorLabel)
		if !ok {
			continue
		}
		i, seen := index[label]
		if !seen {
			index[label] = len(merged)
			merged = append(merged, domain.AggregateRow{
				DonorLabel:      label,
				TotalAmount:     row.TotalAmount,
				DonationsCount:  row.DonationsCount,
				FirstDonationAt: row.FirstDonationAt,
			})
			continue
		}
		bucket := &merged[i]
		bucket.TotalAmount += row.TotalAmount
		bucket.DonationsCount += row.DonationsCount
		if row.FirstDonationAt != nil && (bucket.FirstDonationAt == nil || row.FirstDonationAt.Before(*bucket.FirstDonationAt)) {
			bucket.FirstDonationAt = row.FirstDonationAt
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TotalAmount > merged[j].TotalAmount
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
