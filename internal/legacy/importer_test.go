package legacy

import (
	"testing"
	"time"

	"donorboard/internal/domain"
)

func TestBuildSnapshots(t *testing.T) {
	early := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)
	export := []ExportRow{
		{Key: "2020", Kind: domain.SnapshotRecurring, TotalAmount: 5000, DonationsCount: 2, FirstDonationAt: &late},
		{Key: "Выпуск 2020 г.", Kind: domain.SnapshotRecurring, TotalAmount: 10000, DonationsCount: 3, FirstDonationAt: &early},
		{Key: "friends", Kind: domain.SnapshotRecurring, TotalAmount: 7000, DonationsCount: 1},
		{Key: "Иван Петров", Kind: domain.SnapshotRecurring, TotalAmount: 99999, DonationsCount: 1},
		{Key: "parents", Kind: domain.SnapshotOneTimeGraduation, TotalAmount: 300, DonationsCount: 1},
	}

	result, err := BuildSnapshots(42, export)
	if err != nil {
		t.Fatalf("BuildSnapshots error: %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "Иван Петров" {
		t.Fatalf("unexpected skipped keys: %v", result.Skipped)
	}

	recurring := result.Rows[domain.SnapshotRecurring]
	if len(recurring) != 2 {
		t.Fatalf("expected 2 recurring rows, got %#v", recurring)
	}
	first := recurring[0]
	if first.DonorLabel != "Выпуск 2020 г." || first.TotalAmount != 15000 || first.DonationsCount != 5 || first.Position != 1 {
		t.Fatalf("unexpected merged row: %#v", first)
	}
	if first.FirstDonationAt == nil || !first.FirstDonationAt.Equal(early) {
		t.Fatalf("expected earliest first donation, got %v", first.FirstDonationAt)
	}
	if recurring[1].DonorLabel != "Друзья лицея" || recurring[1].Position != 2 || recurring[1].OrganizationID != 42 {
		t.Fatalf("unexpected second row: %#v", recurring[1])
	}

	oneTime := result.Rows[domain.SnapshotOneTimeGraduation]
	if len(oneTime) != 1 || oneTime[0].DonorLabel != "Родители" || oneTime[0].Kind != domain.SnapshotOneTimeGraduation {
		t.Fatalf("unexpected one-time rows: %#v", oneTime)
	}
}

func TestBuildSnapshotsRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  ExportRow
	}{
		{name: "unknown kind", row: ExportRow{Key: "2020", Kind: "weekly", TotalAmount: 1}},
		{name: "negative amount", row: ExportRow{Key: "2020", Kind: domain.SnapshotRecurring, TotalAmount: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildSnapshots(1, []ExportRow{tc.row}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
