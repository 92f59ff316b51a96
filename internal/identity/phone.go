package identity

import "strings"

// NormalizePhone reduces a phone number to digits with the Russian country code, the
// format donor_phone is stored in. It returns false when no digits remain.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case digits == "":
		return "", false
	case len(digits) == 11 && digits[0] == '8':
		return "7" + digits[1:], true
	case len(digits) == 10:
		return "7" + digits, true
	}
	return digits, true
}
