package handler

import (
	"strings"

	"garage_portal_backend/platform/validator"

	validatorv10 "github.com/go-playground/validator/v10"
)

// registerCustomRules wires the validation tags the customer form uses that
// the validator does not ship with.
func registerCustomRules(val *validator.Validator) {
	// The tag name is a non-empty constant, registration cannot fail.
	_ = val.RegisterValidation("iban", func(fl validatorv10.FieldLevel) bool {
		return validIBAN(fl.Field().String())
	})
}

// validIBAN checks an IBAN per ISO 13616: country code, two check digits,
// and the MOD-97 remainder over the rearranged account number must be 1.
// Spaces are tolerated, casing is not significant.
func validIBAN(iban string) bool {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	if iban[0] < 'A' || iban[0] > 'Z' || iban[1] < 'A' || iban[1] > 'Z' {
		return false
	}
	if iban[2] < '0' || iban[2] > '9' || iban[3] < '0' || iban[3] > '9' {
		return false
	}

	// Move the country code and check digits to the end, then compute the
	// remainder incrementally; letters expand to two digits (A=10..Z=35).
	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			remainder = (remainder*100 + int(r-'A') + 10) % 97
		default:
			return false
		}
	}
	return remainder == 1
}
