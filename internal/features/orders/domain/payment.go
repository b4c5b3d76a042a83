package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidAddress is returned when the delivery address is too short.
	ErrInvalidAddress = errors.New("please enter a complete delivery address")
	// ErrInvalidPaymentMethod is returned for a method outside cod, card and upi.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrInvalidCard is returned when card details are incomplete or malformed.
	ErrInvalidCard = errors.New("please fill all card details")
	// ErrInvalidUPI is returned for a malformed UPI id.
	ErrInvalidUPI = errors.New("please enter a valid UPI ID")
)

// MinAddressLength is the number of characters a trimmed address must exceed.
const MinAddressLength = 10

// PaymentMethod is how the shopper pays.
type PaymentMethod string

const (
	// PaymentCOD is cash on delivery; the order is placed at checkout.
	PaymentCOD PaymentMethod = "cod"
	// PaymentCard requires card details before the order is placed.
	PaymentCard PaymentMethod = "card"
	// PaymentUPI requires a UPI id before the order is placed.
	PaymentUPI PaymentMethod = "upi"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// Online reports whether m goes through the payment step.
func (m PaymentMethod) Online() bool {
	return m == PaymentCard || m == PaymentUPI
}

// ValidateAddress trims address and checks its length.
func ValidateAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if len(trimmed) <= MinAddressLength {
		return "", ErrInvalidAddress
	}
	return trimmed, nil
}

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3}$`)
	upiPattern    = regexp.MustCompile(`^[A-Za-z0-9._-]{2,}@[A-Za-z]{2,}$`)
)

// PaymentDetails is what the shopper submits on the payment step.
type PaymentDetails struct {
	CardNumber string `json:"card_number,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	UPIID      string `json:"upi_id,omitempty"`
}

// Validate checks the fields required by method.
func (d PaymentDetails) Validate(method PaymentMethod) error {
	switch method {
	case PaymentCard:
		if len(digits(d.CardNumber)) != 16 ||
			!expiryPattern.MatchString(strings.TrimSpace(d.Expiry)) ||
			!cvvPattern.MatchString(strings.TrimSpace(d.CVV)) ||
			strings.TrimSpace(d.CardName) == "" {
			return ErrInvalidCard
		}
		return nil
	case PaymentUPI:
		if !upiPattern.MatchString(strings.TrimSpace(d.UPIID)) {
			return ErrInvalidUPI
		}
		return nil
	default:
		return ErrInvalidPaymentMethod
	}
}

// Receipt is the masked instrument kept on the order.
func (d PaymentDetails) Receipt(method PaymentMethod) string {
	switch method {
	case PaymentCard:
		n := digits(d.CardNumber)
		if len(n) < 4 {
			return ""
		}
		return "**** **** **** " + n[len(n)-4:]
	case PaymentUPI:
		return strings.TrimSpace(d.UPIID)
	}
	return ""
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r != ' ' && r != '-' {
			return ""
		}
	}
	return b.String()
}
