package domain

import "time"

// AdvanceStatus asks the lifecycle to move one order to its next status.
type AdvanceStatus struct {
	OrderID string
}

// PendingCheckout holds the checkout details of an online payment not yet made.
type PendingCheckout struct {
	Address   string        `json:"address"`
	Method    PaymentMethod `json:"payment_method"`
	Amount    int           `json:"amount"`
	CreatedAt time.Time     `json:"create_date"`
}

// Charge is one payment request sent to the gateway.
type Charge struct {
	Amount  int
	Method  PaymentMethod
	Receipt string
}
