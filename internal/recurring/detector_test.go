package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"donorboard/internal/domain"
)

type stubDonations struct {
	rows   []domain.Donation
	err    error
	filter domain.DonationFilter
}

func (s *stubDonations) CompletedDonations(_ context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	s.filter = filter
	return s.rows, s.err
}

type stubTransactions struct {
	rows  []domain.PaymentTransaction
	err   error
	calls int
	ids   []int64
}

func (s *stubTransactions) TransactionMetadata(_ context.Context, ids []int64) ([]domain.PaymentTransaction, error) {
	s.calls++
	s.ids = ids
	return s.rows, s.err
}

func TestDetectorFindIDs(t *testing.T) {
	txn := int64(100)
	donations := &stubDonations{rows: []domain.Donation{
		{ID: 3, Status: domain.DonationStatusCompleted, PaymentTransactionID: &txn},
		{ID: 1, Status: domain.DonationStatusCompleted, PaymentDetails: []byte(`{"is_recurring":"true"}`)},
		{ID: 2, Status: domain.DonationStatusCompleted, PaymentDetails: []byte(`{}`)},
		{ID: 4, Status: domain.DonationStatusFailed, PaymentDetails: []byte(`{"is_recurring":true}`)},
	}}
	transactions := &stubTransactions{rows: []domain.PaymentTransaction{
		{ID: 100, PaymentDetails: []byte(`{"recurring_period":"month"}`)},
	}}

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	scope := domain.Scope{Kind: domain.ScopeProject, ID: 7}
	ids, err := NewDetector(donations, transactions).FindIDs(context.Background(), scope, &since)
	if err != nil {
		t.Fatalf("FindIDs error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if donations.filter.Scope != scope || donations.filter.Since == nil || !donations.filter.Since.Equal(since) {
		t.Fatalf("unexpected filter: %#v", donations.filter)
	}
	if len(transactions.ids) != 1 || transactions.ids[0] != 100 {
		t.Fatalf("unexpected transaction lookup: %v", transactions.ids)
	}
}

func TestDetectorSkipsTransactionLookupWithoutTransactions(t *testing.T) {
	donations := &stubDonations{rows: []domain.Donation{{ID: 1, Status: domain.DonationStatusCompleted}}}
	transactions := &stubTransactions{}

	ids, err := NewDetector(donations, transactions).FindIDs(context.Background(), domain.Scope{}, nil)
	if err != nil {
		t.Fatalf("FindIDs error: %v", err)
	}
	if len(ids) != 0 || transactions.calls != 0 {
		t.Fatalf("ids=%v calls=%d", ids, transactions.calls)
	}
}

func TestDetectorPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewDetector(&stubDonations{err: boom}, &stubTransactions{}).FindIDs(context.Background(), domain.Scope{}, nil); !errors.Is(err, boom) {
		t.Fatalf("expected donation error, got %v", err)
	}

	txn := int64(1)
	donations := &stubDonations{rows: []domain.Donation{{ID: 1, Status: domain.DonationStatusCompleted, PaymentTransactionID: &txn}}}
	if _, err := NewDetector(donations, &stubTransactions{err: boom}).FindIDs(context.Background(), domain.Scope{}, nil); !errors.Is(err, boom) {
		t.Fatalf("expected transaction error, got %v", err)
	}
}
