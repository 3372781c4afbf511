package address

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryAddress is a shipping destination owned by one user.
type DeliveryAddress struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Label       string
	Province    string
	City        string
	District    string
	Subdistrict string
	Detail      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateAddressInput struct {
	UserID      uuid.UUID
	Label       string
	Province    string
	City        string
	District    string
	Subdistrict string
	Detail      string
}

type UpdateAddressInput struct {
	Label       *string
	Province    *string
	City        *string
	District    *string
	Subdistrict *string
	Detail      *string
}
