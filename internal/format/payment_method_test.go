package format

import "testing"

func TestPaymentMethodLabel(t *testing.T) {
	s := func(v string) *string { return &v }
	tests := []struct {
		name string
		slug *string
		want string
	}{
		{name: "nil", slug: nil, want: EmptyPlaceholder},
		{name: "empty", slug: s("  "), want: EmptyPlaceholder},
		{name: "sbp", slug: s("sbp"), want: "СБП"},
		{name: "bankcard", slug: s("bankcard"), want: "Онлайн"},
		{name: "bank_card", slug: s("bank_card"), want: "Онлайн"},
		{name: "card", slug: s("card"), want: "Онлайн"},
		{name: "sberbank", slug: s("sberbank"), want: "SberPay"},
		{name: "sberpay upper", slug: s("SberPay"), want: "SberPay"},
		{name: "tinkoff", slug: s("tinkoff_bank"), want: "T-Pay"},
		{name: "tpay", slug: s("tpay"), want: "T-Pay"},
		{name: "unknown latin", slug: s("qiwi"), want: "Qiwi"},
		{name: "unknown cyrillic", slug: s("перевод"), want: "Перевод"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PaymentMethodLabel(tc.slug); got != tc.want {
				t.Fatalf("PaymentMethodLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}
