package repository

import (
	"context"

	"commerce-service/internal/ability"
	"commerce-service/internal/domain/address"
	"commerce-service/internal/domain/cart"
	"commerce-service/internal/domain/invoice"
	"commerce-service/internal/domain/order"
	"commerce-service/internal/domain/product"
	"commerce-service/internal/domain/user"

	"github.com/google/uuid"
)

// Repository interfaces consumed by handlers and middleware.
// Concrete implementations live in the postgres subpackage.

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) (*user.User, error)
}

type ProductRepository interface {
	List(ctx context.Context, filter product.ListFilter) ([]product.Product, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	Create(ctx context.Context, input product.CreateProductInput) (*product.Product, error)
	Update(ctx context.Context, id uuid.UUID, input product.UpdateProductInput) (*product.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]product.Category, error)
	Create(ctx context.Context, name string) (*product.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*product.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagRepository interface {
	List(ctx context.Context) ([]product.Tag, error)
	Create(ctx context.Context, name string) (*product.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	// Replace swaps the user's entire cart for the given items in one
	// transaction.
	Replace(ctx context.Context, userID uuid.UUID, items []cart.Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type OrderRepository interface {
	// Create persists the order, its items, and its invoice, and clears the
	// user's cart, in one transaction.
	Create(ctx context.Context, o *order.Order, inv *invoice.Invoice) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, skip int) ([]order.Order, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

type InvoiceRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*invoice.Invoice, error)
}

type AddressRepository interface {
	Create(ctx context.Context, input address.CreateAddressInput) (*address.DeliveryAddress, error)
	GetByID(ctx context.Context, id uuid.UUID) (*address.DeliveryAddress, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, skip int) ([]address.DeliveryAddress, int, error)
	Update(ctx context.Context, id uuid.UUID, input address.UpdateAddressInput) (*address.DeliveryAddress, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResourceLoader resolves a (subject type, identifier) pair into the field
// map the ability evaluator matches conditions against. Handlers load the
// concrete resource through it before checking ownership-scoped permissions.
type ResourceLoader interface {
	Load(ctx context.Context, subject ability.Subject, id uuid.UUID) (ability.Resource, error)
}
