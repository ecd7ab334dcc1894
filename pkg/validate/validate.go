package validate

import (
	"regexp"

	"github.com/ShiraazMoollatjie/goluhn"
)

var promoCodeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{2,31}$`)

// IsOrderNumber reports whether s is a Luhn-valid order number.
func IsOrderNumber(s string) bool {
	if s == "" {
		return false
	}
	err := goluhn.Validate(s)
	return err == nil
}

// IsPromoCode accepts 3 to 32 letters, digits, dashes or underscores.
func IsPromoCode(s string) bool {
	return promoCodeRe.MatchString(s)
}
