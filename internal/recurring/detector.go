package recurring

import (
	"context"
	"sort"
	"time"

	"donorboard/internal/domain"
)

// Detector finds donations flagged as recurring by gateway metadata.
type Detector struct {
	Donations    domain.DonationSource
	Transactions domain.TransactionSource
}

// NewDetector wires a Detector to its data sources.
func NewDetector(donations domain.DonationSource, transactions domain.TransactionSource) *Detector {
	return &Detector{Donations: donations, Transactions: transactions}
}

// FindIDs returns the ids of completed donations in scope and window that carry an
// explicit recurring marker, ascending.
func (d *Detector) FindIDs(ctx context.Context, scope domain.Scope, since *time.Time) ([]int64, error) {
	donations, err := d.Donations.CompletedDonations(ctx, domain.DonationFilter{Scope: scope, Since: since})
	if err != nil {
		return nil, err
	}
	flagged, err := d.Filter(ctx, donations)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(flagged))
	for _, donation := range flagged {
		ids = append(ids, donation.ID)
	}
	sortIDs(ids)
	return ids, nil
}

// Filter keeps the completed donations that carry an explicit recurring marker.
func (d *Detector) Filter(ctx context.Context, donations []domain.Donation) ([]domain.Donation, error) {
	transactions := map[int64]domain.PaymentTransaction{}
	if txnIDs := TransactionIDs(donations); len(txnIDs) > 0 {
		rows, err := d.Transactions.TransactionMetadata(ctx, txnIDs)
		if err != nil {
			return nil, err
		}
		for _, txn := range rows {
			transactions[txn.ID] = txn
		}
	}

	out := make([]domain.Donation, 0)
	for _, donation := range donations {
		if donation.IsCompleted() && IsRecurring(donation, transactions) {
			out = append(out, donation)
		}
	}
	return out, nil
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
