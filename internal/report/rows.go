package report

import (
	"time"

	"donorboard/internal/domain"
	"donorboard/internal/format"
	"donorboard/internal/identity"
	"donorboard/internal/recurring"
)

// TopDonorRow is one line of the top donors leaderboard.
type TopDonorRow struct {
	DonorLabel     string `json:"donor_label"`
	TotalAmount    int64  `json:"total_amount"`
	TotalFormatted string `json:"total_formatted"`
	DonationsCount int    `json:"donations_count"`
}

// RecurringDonorRow is one line of the recurring donors leaderboard.
type RecurringDonorRow struct {
	DonorLabel      string           `json:"donor_label"`
	TotalAmount     int64            `json:"total_amount"`
	TotalFormatted  string           `json:"total_formatted"`
	DonationsCount  int              `json:"donations_count"`
	FirstDonationAt *time.Time       `json:"first_donation_at"`
	Duration        string           `json:"duration"`
	DonorID         *int64           `json:"donor_id,omitempty"`
	PhotoURL        string           `json:"photo_url,omitempty"`
	Signal          recurring.Signal `json:"signal"`
}

// DonationRow is a single donation in a listing.
type DonationRow struct {
	ID                 int64     `json:"id"`
	ProjectID          int64     `json:"project_id"`
	DonorLabel         string    `json:"donor_label"`
	Amount             int64     `json:"amount"`
	AmountFormatted    string    `json:"amount_formatted"`
	PaymentMethod      *string   `json:"payment_method"`
	PaymentMethodLabel string    `json:"payment_method_label"`
	DonatedAt          time.Time `json:"donated_at"`
}

// PaymentMethodRow is a payment method the current user has paid with.
type PaymentMethodRow struct {
	Method string `json:"method"`
	Label  string `json:"label"`
}

func topDonorRow(row domain.AggregateRow) TopDonorRow {
	return TopDonorRow{
		DonorLabel:     row.DonorLabel,
		TotalAmount:    row.TotalAmount,
		TotalFormatted: format.Amount(row.TotalAmount),
		DonationsCount: row.DonationsCount,
	}
}

func topDonorRowFromSnapshot(row domain.LegacySnapshotRow) TopDonorRow {
	return TopDonorRow{
		DonorLabel:     row.DonorLabel,
		TotalAmount:    row.TotalAmount,
		TotalFormatted: format.Amount(row.TotalAmount),
		DonationsCount: row.DonationsCount,
	}
}

func recurringRow(row domain.AggregateRow, signal recurring.Signal, now time.Time) RecurringDonorRow {
	return RecurringDonorRow{
		DonorLabel:      row.DonorLabel,
		TotalAmount:     row.TotalAmount,
		TotalFormatted:  format.Amount(row.TotalAmount),
		DonationsCount:  row.DonationsCount,
		FirstDonationAt: row.FirstDonationAt,
		Duration:        format.DurationSince(row.FirstDonationAt, now),
		DonorID:         row.DonorID,
		Signal:          signal,
	}
}

func recurringRowFromSnapshot(row domain.LegacySnapshotRow, now time.Time) RecurringDonorRow {
	return RecurringDonorRow{
		DonorLabel:      row.DonorLabel,
		TotalAmount:     row.TotalAmount,
		TotalFormatted:  format.Amount(row.TotalAmount),
		DonationsCount:  row.DonationsCount,
		FirstDonationAt: row.FirstDonationAt,
		Duration:        format.DurationSince(row.FirstDonationAt, now),
		Signal:          recurring.SignalLegacy,
	}
}

func donationRow(d domain.Donation) DonationRow {
	return DonationRow{
		ID:                 d.ID,
		ProjectID:          d.ProjectID,
		DonorLabel:         identity.ResolveDonorLabel(d.DonorName),
		Amount:             d.Amount,
		AmountFormatted:    format.Amount(d.Amount),
		PaymentMethod:      d.PaymentMethod,
		PaymentMethodLabel: format.PaymentMethodLabel(d.PaymentMethod),
		DonatedAt:          d.EffectiveAt(),
	}
}

func donationRows(donations []domain.Donation) []DonationRow {
	rows := make([]DonationRow, 0, len(donations))
	for _, d := range donations {
		rows = append(rows, donationRow(d))
	}
	return rows
}
