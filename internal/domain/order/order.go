package order

import (
	"time"

	"github.com/google/uuid"
)

// Status of an order's lifecycle.
type Status string

const (
	StatusWaitingPayment Status = "waiting_payment"
	StatusProcessing     Status = "processing"
	StatusDelivered      Status = "delivered"
	StatusCompleted      Status = "completed"
)

// Order snapshots the cart and the chosen delivery address at checkout.
type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Status      Status
	DeliveryFee int64
	Address     AddressSnapshot
	Items       []Item
	CreatedAt   time.Time
}

// AddressSnapshot is the delivery address copied into the order, so later
// edits to the address do not change where a placed order ships.
type AddressSnapshot struct {
	Province    string
	City        string
	District    string
	Subdistrict string
	Detail      string
}

// Item is one ordered line, denormalized from the cart item.
type Item struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	Name    string
	Price   int64
	Qty     int
}

// Subtotal sums the item lines, excluding the delivery fee.
func (o *Order) Subtotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Qty)
	}
	return total
}

// Total is the amount due including the delivery fee.
func (o *Order) Total() int64 {
	return o.Subtotal() + o.DeliveryFee
}

type CreateOrderInput struct {
	UserID            uuid.UUID
	DeliveryFee       int64
	DeliveryAddressID uuid.UUID
}
