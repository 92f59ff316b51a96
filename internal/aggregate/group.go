// Package aggregate groups completed donations into donor buckets.
package aggregate

import (
	"sort"

	"donorboard/internal/domain"
	"donorboard/internal/identity"
)

type bucket struct {
	row    domain.AggregateRow
	donors map[Identity]struct{}
}

// ByDonor groups completed donations by donor label. DonationsCount counts donation
// rows. Rows are ordered by total descending; equal totals are ordered by earlier
// first donation, then by label.
func ByDonor(donations []domain.Donation) []domain.AggregateRow {
	return group(donations, false)
}

// ByDonorDistinct groups like ByDonor but DonationsCount counts distinct donor
// identities instead of donation rows.
func ByDonorDistinct(donations []domain.Donation) []domain.AggregateRow {
	return group(donations, true)
}

func group(donations []domain.Donation, distinct bool) []domain.AggregateRow {
	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for _, d := range donations {
		if !d.IsCompleted() {
			continue
		}
		label := identity.ResolveDonorLabel(d.DonorName)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{row: domain.AggregateRow{DonorLabel: label}}
			if distinct {
				b.donors = make(map[Identity]struct{})
			}
			buckets[label] = b
			order = append(order, label)
		}
		b.row.TotalAmount += d.Amount
		if distinct {
			b.donors[IdentityOf(d)] = struct{}{}
		} else {
			b.row.DonationsCount++
		}
		at := d.EffectiveAt()
		if b.row.FirstDonationAt == nil || at.Before(*b.row.FirstDonationAt) {
			b.row.FirstDonationAt = &at
		}
		if b.row.DonorID == nil && d.DonorID != nil {
			id := *d.DonorID
			b.row.DonorID = &id
		}
	}

	rows := make([]domain.AggregateRow, 0, len(order))
	for _, label := range order {
		b := buckets[label]
		if distinct {
			b.row.DonationsCount = len(b.donors)
		}
		rows = append(rows, b.row)
	}
	SortRows(rows)
	return rows
}

// SortRows orders rows by total descending with a deterministic tie-break.
func SortRows(rows []domain.AggregateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalAmount != b.TotalAmount {
			return a.TotalAmount > b.TotalAmount
		}
		switch {
		case a.FirstDonationAt != nil && b.FirstDonationAt != nil && !a.FirstDonationAt.Equal(*b.FirstDonationAt):
			return a.FirstDonationAt.Before(*b.FirstDonationAt)
		case a.FirstDonationAt != nil && b.FirstDonationAt == nil:
			return true
		case a.FirstDonationAt == nil && b.FirstDonationAt != nil:
			return false
		}
		return a.DonorLabel < b.DonorLabel
	})
}

// Total sums TotalAmount over rows.
func Total(rows []domain.AggregateRow) int64 {
	var sum int64
	for _, r := range rows {
		sum += r.TotalAmount
	}
	return sum
}
