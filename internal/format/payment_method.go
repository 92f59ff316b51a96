package format

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmptyPlaceholder is shown for a missing payment method.
const EmptyPlaceholder = "—"

var paymentMethodLabels = map[string]string{
	"sbp":          "СБП",
	"bankcard":     "Онлайн",
	"bank_card":    "Онлайн",
	"card":         "Онлайн",
	"sberbank":     "SberPay",
	"sberpay":      "SberPay",
	"tinkoff_bank": "T-Pay",
	"tpay":         "T-Pay",
	"yoo_money":    "ЮMoney",
	"yoomoney":     "ЮMoney",
	"apple_pay":    "Apple Pay",
	"google_pay":   "Google Pay",
	"cash":         "Наличные",
}

// PaymentMethodLabel maps a gateway slug to its display name. Unknown slugs are shown
// with the first letter capitalised.
func PaymentMethodLabel(slug *string) string {
	if slug == nil {
		return EmptyPlaceholder
	}
	s := strings.TrimSpace(*slug)
	if s == "" {
		return EmptyPlaceholder
	}
	if label, ok := paymentMethodLabels[strings.ToLower(s)]; ok {
		return label
	}
	first, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Russian).String(string(first)) + s[size:]
}
