package metadata

import (
	"regexp"
	"strings"
)

// Nigerian numbers: +234XXXXXXXXXX or 0XXXXXXXXXX with a 7/8/9 prefix.
var phonePattern = regexp.MustCompile(`^(\+234|0)[789]\d{9}$`)

// ValidPhone reports whether the input is an acceptable Nigerian mobile
// number. Whitespace is ignored.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(stripSpaces(phone))
}

// NormalizePhone rewrites a local 0-prefixed number to +234 form so the
// same subscriber always compares equal. Already-international numbers
// pass through with whitespace stripped.
func NormalizePhone(phone string) string {
	cleaned := stripSpaces(phone)
	if strings.HasPrefix(cleaned, "0") {
		return "+234" + cleaned[1:]
	}
	return cleaned
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
