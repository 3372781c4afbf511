package cart

import (
	"github.com/google/uuid"
)

// Item is one line of a user's cart, denormalized from the product at the
// time it was added so later price changes do not alter the cart.
type Item struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     int64
	ImageURL  string
	Qty       int
}

type PutItemInput struct {
	ProductID uuid.UUID
	Qty       int
}
