package recurring

import (
	"testing"

	"donorboard/internal/domain"
)

func TestIsRecurringDetails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "empty", raw: "", want: false},
		{name: "empty object", raw: `{}`, want: false},
		{name: "bool true", raw: `{"is_recurring": true}`, want: true},
		{name: "bool false", raw: `{"is_recurring": false}`, want: false},
		{name: "string true", raw: `{"is_recurring": "true"}`, want: true},
		{name: "upper case string is not a marker", raw: `{"is_recurring": "TRUE"}`, want: false},
		{name: "padded string is not a marker", raw: `{"is_recurring": " true "}`, want: false},
		{name: "string false", raw: `{"is_recurring": "false"}`, want: false},
		{name: "number one is not a marker", raw: `{"is_recurring": 1}`, want: false},
		{name: "recurring period", raw: `{"recurring_period": "month"}`, want: true},
		{name: "recurring period object", raw: `{"recurring_period": {"interval": 1}}`, want: true},
		{name: "null recurring period", raw: `{"recurring_period": null}`, want: false},
		{name: "malformed", raw: `{"is_recurring": tru`, want: false},
		{name: "not an object", raw: `"recurring"`, want: false},
		{name: "array", raw: `[1,2]`, want: false},
		{name: "json null", raw: `null`, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRecurringDetails([]byte(tc.raw)); got != tc.want {
				t.Fatalf("IsRecurringDetails(%s) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIsRecurringPrefersTransactionThenOwnDetails(t *testing.T) {
	txnID := int64(5)
	transactions := map[int64]domain.PaymentTransaction{
		5: {ID: 5, PaymentDetails: []byte(`{"is_recurring": true}`)},
	}

	viaTxn := domain.Donation{ID: 1, PaymentTransactionID: &txnID, Status: domain.DonationStatusCompleted}
	if !IsRecurring(viaTxn, transactions) {
		t.Fatalf("expected recurring via transaction metadata")
	}

	own := domain.Donation{ID: 2, PaymentDetails: []byte(`{"recurring_period": "month"}`)}
	if !IsRecurring(own, transactions) {
		t.Fatalf("expected recurring via own details")
	}

	missingTxn := int64(6)
	plain := domain.Donation{ID: 3, PaymentTransactionID: &missingTxn, PaymentDetails: []byte(`not json`)}
	if IsRecurring(plain, transactions) {
		t.Fatalf("expected not recurring")
	}
}

func TestTransactionIDs(t *testing.T) {
	a, b := int64(9), int64(3)
	ids := TransactionIDs([]domain.Donation{
		{ID: 1, PaymentTransactionID: &a},
		{ID: 2},
		{ID: 3, PaymentTransactionID: &b},
		{ID: 4, PaymentTransactionID: &a},
	})
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 9 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
