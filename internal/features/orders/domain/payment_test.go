package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	_, err := ValidateAddress("  short  ")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ValidateAddress("0123456789")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	addr, err := ValidateAddress("  12 Park Street  ")
	assert.NoError(t, err)
	assert.Equal(t, "12 Park Street", addr)
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentCOD.Valid())
	assert.False(t, PaymentCOD.Online())
	assert.True(t, PaymentCard.Online())
	assert.True(t, PaymentUPI.Online())
	assert.False(t, PaymentMethod("wallet").Valid())
}

func TestPaymentDetails_Validate(t *testing.T) {
	card := PaymentDetails{CardNumber: "1234 5678 9012 3456", Expiry: "12/27", CVV: "123", CardName: "Asha Rao"}

	tests := []struct {
		name    string
		details PaymentDetails
		method  PaymentMethod
		wantErr error
	}{
		{"ValidCard", card, PaymentCard, nil},
		{"ShortCard", PaymentDetails{CardNumber: "1234", Expiry: "12/27", CVV: "123", CardName: "A"}, PaymentCard, ErrInvalidCard},
		{"BadExpiry", PaymentDetails{CardNumber: card.CardNumber, Expiry: "13/27", CVV: "123", CardName: "A"}, PaymentCard, ErrInvalidCard},
		{"BadCVV", PaymentDetails{CardNumber: card.CardNumber, Expiry: "12/27", CVV: "12", CardName: "A"}, PaymentCard, ErrInvalidCard},
		{"NoName", PaymentDetails{CardNumber: card.CardNumber, Expiry: "12/27", CVV: "123", CardName: " "}, PaymentCard, ErrInvalidCard},
		{"LettersInCard", PaymentDetails{CardNumber: "1234 5678 9012 345x", Expiry: "12/27", CVV: "123", CardName: "A"}, PaymentCard, ErrInvalidCard},
		{"ValidUPI", PaymentDetails{UPIID: "asha@okaxis"}, PaymentUPI, nil},
		{"BadUPI", PaymentDetails{UPIID: "asha"}, PaymentUPI, ErrInvalidUPI},
		{"COD", PaymentDetails{}, PaymentCOD, ErrInvalidPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate(tt.method)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPaymentDetails_Receipt(t *testing.T) {
	card := PaymentDetails{CardNumber: "1234-5678-9012-3456"}
	assert.Equal(t, "**** **** **** 3456", card.Receipt(PaymentCard))
	assert.Equal(t, "asha@okaxis", PaymentDetails{UPIID: " asha@okaxis "}.Receipt(PaymentUPI))
	assert.Empty(t, card.Receipt(PaymentCOD))
}
