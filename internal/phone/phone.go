// Package phone normalizes phone numbers to the canonical form used as
// the guest directory key: digits only, country-code prefixed.
package phone

import "strings"

// Normalize strips every non-digit character and converts a local number
// (leading "0") to international form using the given country calling
// code. A number that already carries the country code but kept the
// local trunk zero (e.g. "9720...") has the zero removed as well.
func Normalize(raw, countryCode string) string {
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
	if strings.HasPrefix(digits, countryCode+"0") {
		return countryCode + digits[len(countryCode)+1:]
	}
	return digits
}
