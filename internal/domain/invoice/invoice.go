package invoice

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusWaiting PaymentStatus = "waiting_payment"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Invoice is created together with its order and never mutated except for
// payment status.
type Invoice struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	UserID        uuid.UUID
	Subtotal      int64
	DeliveryFee   int64
	Total         int64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}
