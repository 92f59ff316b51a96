// Package format renders report aggregates for display.
package format

import (
	"strconv"
	"strings"
)

// CurrencySuffix follows every formatted amount.
const CurrencySuffix = " ₽"

// Amount renders kopecks as whole rubles grouped by thousands: 12345 -> "123 ₽".
// The kopeck remainder is truncated, never rounded.
func Amount(minor int64) string {
	major := minor / 100
	sign := ""
	if major < 0 {
		sign = "-"
		major = -major
	}
	return sign + groupThousands(strconv.FormatInt(major, 10)) + CurrencySuffix
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
