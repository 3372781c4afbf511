package postgres

import (
	"context"
	"fmt"
	"strings"

	"commerce-service/internal/domain/product"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productSelectColumns = `
	p.id, p.name, p.description, p.price, p.image_url,
	COALESCE(c.name, ''),
	COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}'),
	p.created_at, p.updated_at
`

const productSelectJoins = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN product_tags pt ON pt.product_id = p.id
	LEFT JOIN tags t ON t.id = pt.tag_id
`

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, filter product.ListFilter) ([]product.Product, int, error) {
	where, args := buildProductFilter(filter)

	countQuery := `SELECT COUNT(DISTINCT p.id)` + productSelectJoins + where
	var count int
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf(errFailedCountProductsFmt, err)
	}

	query := `SELECT` + productSelectColumns + productSelectJoins + where +
		fmt.Sprintf(` GROUP BY p.id, c.name ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
			len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf(errFailedListProductsFmt, err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf(errFailedScanProductFmt, err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf(errFailedListProductsFmt, err)
	}

	return products, count, nil
}

func buildProductFilter(filter product.ListFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Query != "" {
		args = append(args, "%"+escapeLikePattern(filter.Query)+"%")
		clauses = append(clauses, fmt.Sprintf(`p.name ILIKE $%d`, len(args)))
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf(
			`p.category_id = (SELECT id FROM categories WHERE name ILIKE $%d LIMIT 1)`, len(args)))
	}

	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		clauses = append(clauses, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM product_tags ept
				JOIN tags et ON et.id = ept.tag_id
				WHERE ept.product_id = p.id AND et.name = ANY($%d)
			)`, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT` + productSelectColumns + productSelectJoins +
		` WHERE p.id = $1 GROUP BY p.id, c.name`

	p, err := scanProduct(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProductNotFound)
		}
		return nil, fmt.Errorf(errFailedGetProductFmt, err)
	}

	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, input product.CreateProductInput) (*product.Product, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(errFailedStartTransactionFmt, err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (name, description, price, image_url, category_id)
		VALUES ($1, $2, $3, $4, (SELECT id FROM categories WHERE name ILIKE $5 LIMIT 1))
		RETURNING id
	`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		input.Name, input.Description, input.Price, input.ImageURL, input.Category,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateProductFmt, err)
	}

	if err := setProductTags(ctx, tx, id, input.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(errFailedCommitTransactionFmt, err)
	}

	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, input product.UpdateProductInput) (*product.Product, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(errFailedStartTransactionFmt, err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    image_url = COALESCE($5, image_url),
		    category_id = CASE
		        WHEN $6::text IS NULL THEN category_id
		        ELSE (SELECT id FROM categories WHERE name ILIKE $6 LIMIT 1)
		    END,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		id, input.Name, input.Description, input.Price, input.ImageURL, input.Category)
	if err != nil {
		return nil, fmt.Errorf(errFailedUpdateProductFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound(errProductNotFound)
	}

	if input.Tags != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1`, id); err != nil {
			return nil, fmt.Errorf(errFailedSetProductTagFmt, err)
		}
		if err := setProductTags(ctx, tx, id, input.Tags); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(errFailedCommitTransactionFmt, err)
	}

	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteProductFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errProductNotFound)
	}
	return nil
}

// setProductTags links the product to the named tags that exist; unknown tag
// names are silently skipped, matching how category resolution behaves.
func setProductTags(ctx context.Context, tx pgx.Tx, productID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_tags (product_id, tag_id)
		SELECT $1, id FROM tags WHERE name = ANY($2)
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, productID, tags); err != nil {
		return fmt.Errorf(errFailedSetProductTagFmt, err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	p := &product.Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.Category,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
