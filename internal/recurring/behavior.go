package recurring

import (
	"donorboard/internal/aggregate"
	"donorboard/internal/domain"
	"donorboard/internal/identity"
)

// MinBehaviorPayments is how many completed payments a donor needs before repeat
// giving is treated as recurring.
const MinBehaviorPayments = 2

// DetectByBehavior approximates recurring donors from repeat payments when the gateway
// never recorded an explicit flag. Donations are grouped by the composite identity
// (donor id, phone, folded name) and only groups with at least MinBehaviorPayments
// completed donations are kept. This is a weaker signal than the explicit flag.
func DetectByBehavior(donations []domain.Donation) []domain.AggregateRow {
	type group struct {
		row   domain.AggregateRow
		count int
	}
	groups := make(map[aggregate.Identity]*group)
	order := make([]aggregate.Identity, 0)
	for _, d := range donations {
		if !d.IsCompleted() {
			continue
		}
		key := aggregate.IdentityOf(d)
		g, ok := groups[key]
		if !ok {
			g = &group{row: domain.AggregateRow{DonorLabel: identity.ResolveDonorLabel(d.DonorName)}}
			if d.DonorID != nil {
				id := *d.DonorID
				g.row.DonorID = &id
			}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
		g.row.TotalAmount += d.Amount
		at := d.EffectiveAt()
		if g.row.FirstDonationAt == nil || at.Before(*g.row.FirstDonationAt) {
			g.row.FirstDonationAt = &at
		}
	}

	rows := make([]domain.AggregateRow, 0)
	for _, key := range order {
		g := groups[key]
		if g.count < MinBehaviorPayments {
			continue
		}
		g.row.DonationsCount = g.count
		rows = append(rows, g.row)
	}
	aggregate.SortRows(rows)
	return rows
}
