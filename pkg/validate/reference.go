package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

const (
	minReferenceLen = 6
	maxReferenceLen = 24
)

// IsPaymentReference accepts receipt numbers of 6-24 digits whose last digit is a Luhn check digit.
func IsPaymentReference(s string) bool {
	if len(s) < minReferenceLen || len(s) > maxReferenceLen {
		return false
	}
	return goluhn.Validate(s) == nil
}
