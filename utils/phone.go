package utils

import "strings"

// countryCode is the Sri Lankan calling code every stored phone key carries.
const countryCode = "94"

// NormalizePhone canonicalizes raw phone input into the single national
// format used as a lookup key everywhere: digits only, country code first.
// "0771234567", "771234567" and "94771234567" all normalize to
// "94771234567". The function is pure and total; garbage in yields a short
// digit string that simply matches nothing.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	if !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}
