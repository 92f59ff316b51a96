package aggregate

import (
	"sort"

	"donorboard/internal/domain"
)

// DedupByTransaction keeps the donation with the smallest id for every payment
// transaction. Donations without a transaction are all kept. Input order is preserved.
func DedupByTransaction(donations []domain.Donation) []domain.Donation {
	keep := make(map[int64]int64)
	for _, d := range donations {
		if d.PaymentTransactionID == nil {
			continue
		}
		txn := *d.PaymentTransactionID
		if current, ok := keep[txn]; !ok || d.ID < current {
			keep[txn] = d.ID
		}
	}

	out := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if d.PaymentTransactionID != nil && keep[*d.PaymentTransactionID] != d.ID {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SortByEffectiveDesc orders donations newest first; equal timestamps put the higher id first.
func SortByEffectiveDesc(donations []domain.Donation) {
	sort.SliceStable(donations, func(i, j int) bool {
		a, b := donations[i].EffectiveAt(), donations[j].EffectiveAt()
		if !a.Equal(b) {
			return a.After(b)
		}
		return donations[i].ID > donations[j].ID
	})
}

// Completed drops donations that are not completed.
func Completed(donations []domain.Donation) []domain.Donation {
	out := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if d.IsCompleted() {
			out = append(out, d)
		}
	}
	return out
}
