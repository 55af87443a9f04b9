package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
	"github.com/google/uuid"
)

func IsLuhn(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsDataURI reports whether s looks like data:<mime>;base64,<data>.
func IsDataURI(s string) bool {
	if !strings.HasPrefix(s, "data:") {
		return false
	}
	meta, data, found := strings.Cut(s[len("data:"):], ",")
	if !found || data == "" {
		return false
	}
	return strings.HasSuffix(meta, ";base64")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// IsCardNumber reports whether s is a digits-only payout card number.
// Card numbers additionally carry a Luhn checksum.
func IsCardNumber(s string) bool {
	if len(s) < 13 || len(s) > 19 {
		return false
	}
	return isDigits(s) && IsLuhn(s)
}

// IsAccountNumber reports whether s is a digits-only payout destination.
// Card-shaped values (13 to 19 digits) must also pass the Luhn checksum;
// plain bank account numbers carry no checksum.
func IsAccountNumber(s string) bool {
	if len(s) < 6 || len(s) > 34 || !isDigits(s) {
		return false
	}
	if len(s) >= 13 && len(s) <= 19 {
		return IsLuhn(s)
	}
	return true
}
