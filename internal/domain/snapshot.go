package domain

import "time"

// SnapshotKind names a precomputed report imported from the prior system.
type SnapshotKind string

const (
	SnapshotOneTimeGraduation SnapshotKind = "one_time_graduation"
	SnapshotRecurring         SnapshotKind = "recurring"
)

// Valid reports whether k is a known snapshot kind.
func (k SnapshotKind) Valid() bool {
	return k == SnapshotOneTimeGraduation || k == SnapshotRecurring
}

// LegacySnapshotRow is a pre-aggregated leaderboard row for a migrated organization.
// Rows are served verbatim and never recomputed.
type LegacySnapshotRow struct {
	OrganizationID  int64        `json:"organization_id" dynamodbav:"organization_id"`
	Kind            SnapshotKind `json:"kind" dynamodbav:"kind"`
	Position        int          `json:"position" dynamodbav:"position"`
	DonorLabel      string       `json:"donor_label" dynamodbav:"donor_label"`
	TotalAmount     int64        `json:"total_amount" dynamodbav:"total_amount"`
	DonationsCount  int          `json:"donations_count" dynamodbav:"donations_count"`
	FirstDonationAt *time.Time   `json:"first_donation_at,omitempty" dynamodbav:"first_donation_at,omitempty"`
}
