package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Tags        []string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	Category    *string
	Tags        []string
}

// ListFilter narrows a product listing; zero values mean "no filter".
type ListFilter struct {
	Query    string
	Category string
	Tags     []string
	Limit    int
	Skip     int
}

type Category struct {
	ID   uuid.UUID
	Name string
}

type Tag struct {
	ID   uuid.UUID
	Name string
}
