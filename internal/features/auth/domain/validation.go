package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEmail is returned for an email without "@".
	ErrInvalidEmail = errors.New("please enter a valid email address")
	// ErrInvalidPhone is returned for a phone number that is not 10 digits.
	ErrInvalidPhone = errors.New("please enter a valid 10-digit phone number")
	// ErrInvalidOTP is returned for a code that is not 6 digits.
	ErrInvalidOTP = errors.New("please enter a valid 6-digit OTP")
	// ErrPasswordRequired is returned when the password is empty.
	ErrPasswordRequired = errors.New("password is required")
)

// CountryCode is prefixed to every phone number sent to the provider.
const CountryCode = "+91"

// IdentityError is a failure reported by the identity provider. Message is
// the provider's text, passed to the client unchanged.
type IdentityError struct {
	Status  int
	Message string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity provider: %s", e.Message)
}

// ValidateEmail trims email and checks it contains "@".
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizePhone accepts a 10-digit national number, optionally already
// prefixed with the country code, and returns it in E.164 form.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, CountryCode)
	phone = strings.ReplaceAll(phone, " ", "")
	if len(phone) != 10 || !allDigits(phone) {
		return "", ErrInvalidPhone
	}
	return CountryCode + phone, nil
}

// ValidateOTP checks code is exactly 6 digits.
func ValidateOTP(code string) error {
	if len(code) != 6 || !allDigits(code) {
		return ErrInvalidOTP
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
