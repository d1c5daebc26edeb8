package login

import (
	"errors"
	"fmt"
	"unicode"
)

const minServicePasswordLen = 12

// ValidatePasswordPolicy guards the shared service-account password before it is hashed.
func ValidatePasswordPolicy(password string) error {
	if len(password) < minServicePasswordLen {
		return fmt.Errorf("password must be at least %d characters", minServicePasswordLen)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return errors.New("password must include upper, lower, digit and symbol")
	}
	return nil
}
