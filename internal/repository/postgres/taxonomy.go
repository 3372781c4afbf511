package postgres

import (
	"context"
	"fmt"

	"commerce-service/internal/domain/product"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
)

// CategoryRepository and TagRepository back the admin-managed product
// taxonomy.

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]product.Category, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf(errFailedListCategoriesFmt, err)
	}
	defer rows.Close()

	var categories []product.Category
	for rows.Next() {
		var c product.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf(errFailedListCategoriesFmt, err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errFailedListCategoriesFmt, err)
	}

	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*product.Category, error) {
	c := &product.Category{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&c.ID, &c.Name)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("category with this name already exists")
		}
		return nil, fmt.Errorf(errFailedCreateCategoryFmt, err)
	}

	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, name string) (*product.Category, error) {
	c := &product.Category{}
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name`, id, name,
	).Scan(&c.ID, &c.Name)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("category with this name already exists")
		}
		if isNoRows(err) {
			return nil, apperrors.NotFound(errCategoryNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateCategoryFmt, err)
	}

	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteCategoryFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errCategoryNotFound)
	}
	return nil
}

type TagRepository struct {
	db *DB
}

func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]product.Tag, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf(errFailedListTagsFmt, err)
	}
	defer rows.Close()

	var tags []product.Tag
	for rows.Next() {
		var t product.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf(errFailedListTagsFmt, err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errFailedListTagsFmt, err)
	}

	return tags, nil
}

func (r *TagRepository) Create(ctx context.Context, name string) (*product.Tag, error) {
	t := &product.Tag{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&t.ID, &t.Name)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("tag with this name already exists")
		}
		return nil, fmt.Errorf(errFailedCreateTagFmt, err)
	}

	return t, nil
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteTagFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errTagNotFound)
	}
	return nil
}
