package postgres

import (
	"context"
	"fmt"

	"commerce-service/internal/domain/invoice"
	"commerce-service/internal/domain/order"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order, its item lines, and its invoice, and clears the
// user's cart, all in one transaction: checkout either fully happens or not
// at all.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order, inv *invoice.Invoice) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf(errFailedStartTransactionFmt, err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (user_id, status, delivery_fee,
			address_province, address_city, address_district, address_subdistrict, address_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, orderQuery,
		o.UserID, o.Status, o.DeliveryFee,
		o.Address.Province, o.Address.City, o.Address.District, o.Address.Subdistrict, o.Address.Detail,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf(errFailedCreateOrderFmt, err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, name, price, qty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		err := tx.QueryRow(ctx, itemQuery,
			o.ID, o.Items[i].Name, o.Items[i].Price, o.Items[i].Qty,
		).Scan(&o.Items[i].ID)
		if err != nil {
			return fmt.Errorf(errFailedInsertOrderItemFmt, err)
		}
	}

	invoiceQuery := `
		INSERT INTO invoices (order_id, user_id, subtotal, delivery_fee, total, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	inv.OrderID = o.ID
	err = tx.QueryRow(ctx, invoiceQuery,
		inv.OrderID, inv.UserID, inv.Subtotal, inv.DeliveryFee, inv.Total, inv.PaymentStatus,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf(errFailedCreateInvoiceFmt, err)
	}

	if err := clearCart(ctx, tx, o.UserID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(errFailedCommitTransactionFmt, err)
	}

	return nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, skip int) ([]order.Order, int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf(errFailedCountOrdersFmt, err)
	}

	query := `
		SELECT id, user_id, status, delivery_fee,
			address_province, address_city, address_district, address_subdistrict, address_detail,
			created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf(errFailedListOrdersFmt, err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf(errFailedScanOrderFmt, err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf(errFailedListOrdersFmt, err)
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}

	return orders, count, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `
		SELECT id, user_id, status, delivery_fee,
			address_province, address_city, address_district, address_subdistrict, address_detail,
			created_at
		FROM orders
		WHERE id = $1
	`

	o, err := scanOrder(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errOrderNotFound)
		}
		return nil, fmt.Errorf(errFailedGetOrderFmt, err)
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]order.Item, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, order_id, name, price, qty FROM order_items WHERE order_id = $1 ORDER BY name`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf(errFailedListOrderItemsFmt, err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, fmt.Errorf(errFailedListOrderItemsFmt, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errFailedListOrderItemsFmt, err)
	}

	return items, nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	o := &order.Order{}
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.DeliveryFee,
		&o.Address.Province,
		&o.Address.City,
		&o.Address.District,
		&o.Address.Subdistrict,
		&o.Address.Detail,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

type InvoiceRepository struct {
	db *DB
}

func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*invoice.Invoice, error) {
	query := `
		SELECT id, order_id, user_id, subtotal, delivery_fee, total, payment_status, created_at
		FROM invoices
		WHERE order_id = $1
	`

	inv := &invoice.Invoice{}
	err := r.db.Pool.QueryRow(ctx, query, orderID).Scan(
		&inv.ID,
		&inv.OrderID,
		&inv.UserID,
		&inv.Subtotal,
		&inv.DeliveryFee,
		&inv.Total,
		&inv.PaymentStatus,
		&inv.CreatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errInvoiceNotFound)
		}
		return nil, fmt.Errorf(errFailedGetInvoiceFmt, err)
	}

	return inv, nil
}
