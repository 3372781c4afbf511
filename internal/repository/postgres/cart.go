package postgres

import (
	"context"
	"fmt"

	"commerce-service/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	db *DB
}

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	query := `
		SELECT id, user_id, product_id, name, price, image_url, qty
		FROM cart_items
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf(errFailedListCartItemsFmt, err)
	}
	defer rows.Close()

	var items []cart.Item
	for rows.Next() {
		var item cart.Item
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.ImageURL,
			&item.Qty,
		)
		if err != nil {
			return nil, fmt.Errorf(errFailedScanCartItemFmt, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errFailedListCartItemsFmt, err)
	}

	return items, nil
}

// Replace swaps the user's entire cart in one transaction so a concurrent
// reader never observes a half-updated cart.
func (r *CartRepository) Replace(ctx context.Context, userID uuid.UUID, items []cart.Item) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf(errFailedStartTransactionFmt, err)
	}
	defer tx.Rollback(ctx)

	if err := clearCart(ctx, tx, userID); err != nil {
		return err
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, name, price, image_url, qty)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range items {
		_, err := tx.Exec(ctx, query,
			userID, item.ProductID, item.Name, item.Price, item.ImageURL, item.Qty)
		if err != nil {
			return fmt.Errorf(errFailedInsertCartFmt, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(errFailedCommitTransactionFmt, err)
	}

	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf(errFailedClearCartFmt, err)
	}
	return nil
}

func clearCart(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf(errFailedClearCartFmt, err)
	}
	return nil
}
