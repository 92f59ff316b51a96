// Package recurring classifies donations as part of a repeating payment arrangement.
package recurring

import (
	"bytes"
	"encoding/json"

	"donorboard/internal/domain"
)

// Signal tells which detector produced a recurring result. The two signals are
// reported separately and never merged.
type Signal string

const (
	SignalExplicit Signal = "explicit"
	SignalBehavior Signal = "behavior"
	SignalLegacy   Signal = "legacy"
)

type details struct {
	IsRecurring     json.RawMessage `json:"is_recurring"`
	RecurringPeriod json.RawMessage `json:"recurring_period"`
}

// IsRecurringDetails reports whether payment_details carries a recurring marker: a
// truthy is_recurring (true or "true") or a non-null recurring_period. Details that do
// not parse as a JSON object count as "not recurring".
func IsRecurringDetails(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	var d details
	if err := json.Unmarshal(raw, &d); err != nil {
		return false
	}
	if truthy(d.IsRecurring) {
		return true
	}
	return len(d.RecurringPeriod) > 0 && string(d.RecurringPeriod) != "null"
}

func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "true"
	}
	return false
}

// IsRecurring checks the linked transaction's details first, then the donation's own.
func IsRecurring(d domain.Donation, transactions map[int64]domain.PaymentTransaction) bool {
	if d.PaymentTransactionID != nil {
		if txn, ok := transactions[*d.PaymentTransactionID]; ok && IsRecurringDetails(txn.PaymentDetails) {
			return true
		}
	}
	return IsRecurringDetails(d.PaymentDetails)
}

// TransactionIDs returns the distinct transaction ids referenced by donations, ascending.
func TransactionIDs(donations []domain.Donation) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, d := range donations {
		if d.PaymentTransactionID == nil {
			continue
		}
		if _, ok := seen[*d.PaymentTransactionID]; ok {
			continue
		}
		seen[*d.PaymentTransactionID] = struct{}{}
		ids = append(ids, *d.PaymentTransactionID)
	}
	sortIDs(ids)
	return ids
}
