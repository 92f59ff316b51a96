package domain

import "time"

// DonationStatus enumerates payment states of a donation row.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
	DonationStatusRefunded  DonationStatus = "refunded"
)

// Donation represents a supporter contribution record. Amount is in kopecks.
type Donation struct {
	ID                   int64
	ProjectID            int64
	OrganizationID       int64
	DonorID              *int64
	DonorName            *string
	DonorPhone           *string
	Amount               int64
	Status               DonationStatus
	PaymentTransactionID *int64
	PaymentMethod        *string
	PaymentDetails       []byte
	PaidAt               *time.Time
	CreatedAt            time.Time
}

// EffectiveAt returns the payment time when known, otherwise the creation time.
func (d Donation) EffectiveAt() time.Time {
	if d.PaidAt != nil {
		return *d.PaidAt
	}
	return d.CreatedAt
}

// IsCompleted reports whether the donation may take part in aggregation.
func (d Donation) IsCompleted() bool {
	return d.Status == DonationStatusCompleted
}

// PaymentTransaction groups donation rows created from a single gateway charge.
type PaymentTransaction struct {
	ID             int64
	PaymentDetails []byte
}

// AggregateRow is a donor bucket computed from donations. It is never persisted.
type AggregateRow struct {
	DonorLabel      string
	TotalAmount     int64
	DonationsCount  int
	FirstDonationAt *time.Time
	DonorID         *int64
}
