package domain

import (
	"errors"
	"time"

	cart "nearzy/internal/features/cart/domain"
)

// ErrAlreadyDelivered is returned when advancing an order that reached its final status.
var ErrAlreadyDelivered = errors.New("order already delivered")

// Status is a step of the delivery lifecycle.
type Status string

const (
	// StatusAccepted is the status of every newly placed order.
	StatusAccepted Status = "accepted"
	// StatusPacked indicates the store packed the items.
	StatusPacked Status = "packed"
	// StatusPickedUp indicates a rider collected the order.
	StatusPickedUp Status = "picked-up"
	// StatusDelivered is terminal.
	StatusDelivered Status = "delivered"
)

var sequence = []Status{StatusAccepted, StatusPacked, StatusPickedUp, StatusDelivered}

var etas = map[Status]string{
	StatusAccepted:  "15-20 mins",
	StatusPacked:    "10-15 mins",
	StatusPickedUp:  "5-8 mins",
	StatusDelivered: "Delivered!",
}

// Next returns the status after s. ok is false at the terminal status or for unknown values.
func (s Status) Next() (next Status, ok bool) {
	for i, st := range sequence {
		if st == s && i+1 < len(sequence) {
			return sequence[i+1], true
		}
	}
	return "", false
}

// ETA is the delivery estimate shown for s.
func (s Status) ETA() string {
	return etas[s]
}

// StatusEvent records when an order reached a status.
type StatusEvent struct {
	Status Status    `json:"status"`
	Date   time.Time `json:"date"`
}

// Order is a placed order with its frozen cart snapshot.
type Order struct {
	ID      string        `json:"order_id"`
	Status  Status        `json:"status"`
	ETA     string        `json:"eta"`
	Address string        `json:"address"`
	Payment PaymentMethod `json:"payment_method"`
	// Receipt is the masked payment instrument, empty for cash on delivery.
	Receipt string `json:"receipt,omitempty"`
	// PaymentRef is the gateway reference of the charge, empty for cash on delivery.
	PaymentRef string        `json:"payment_ref,omitempty"`
	Cart       cart.Snapshot `json:"cart"`
	CreatedAt  time.Time     `json:"create_date"`
	History    []StatusEvent `json:"history"`
}

// NewOrder builds an accepted order from a cart snapshot.
func NewOrder(id string, snapshot cart.Snapshot, address string, method PaymentMethod, receipt string, at time.Time) *Order {
	return &Order{
		ID:        id,
		Status:    StatusAccepted,
		ETA:       StatusAccepted.ETA(),
		Address:   address,
		Payment:   method,
		Receipt:   receipt,
		Cart:      snapshot,
		CreatedAt: at,
		History:   []StatusEvent{{Status: StatusAccepted, Date: at}},
	}
}

// Advance moves the order to the next status.
func (o *Order) Advance(at time.Time) error {
	next, ok := o.Status.Next()
	if !ok {
		return ErrAlreadyDelivered
	}
	o.Status = next
	o.ETA = next.ETA()
	o.History = append(o.History, StatusEvent{Status: next, Date: at})
	return nil
}

// Delivered reports whether the order reached the terminal status.
func (o *Order) Delivered() bool {
	return o.Status == StatusDelivered
}
