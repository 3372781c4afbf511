package postgres

import (
	"context"
	"fmt"

	"commerce-service/internal/domain/address"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const addressColumns = `
	id, user_id, label, province, city, district, subdistrict, detail, created_at, updated_at
`

type AddressRepository struct {
	db *DB
}

func NewAddressRepository(db *DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, input address.CreateAddressInput) (*address.DeliveryAddress, error) {
	query := `
		INSERT INTO delivery_addresses (user_id, label, province, city, district, subdistrict, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + addressColumns

	a, err := scanAddress(r.db.Pool.QueryRow(ctx, query,
		input.UserID, input.Label, input.Province, input.City,
		input.District, input.Subdistrict, input.Detail))
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAddressFmt, err)
	}

	return a, nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*address.DeliveryAddress, error) {
	query := `SELECT` + addressColumns + `FROM delivery_addresses WHERE id = $1`

	a, err := scanAddress(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errAddressNotFound)
		}
		return nil, fmt.Errorf(errFailedGetAddressFmt, err)
	}

	return a, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, skip int) ([]address.DeliveryAddress, int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM delivery_addresses WHERE user_id = $1`, userID,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf(errFailedCountAddressFmt, err)
	}

	query := `SELECT` + addressColumns + `
		FROM delivery_addresses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit, skip)
	if err != nil {
		return nil, 0, fmt.Errorf(errFailedListAddressesFmt, err)
	}
	defer rows.Close()

	var addresses []address.DeliveryAddress
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, 0, fmt.Errorf(errFailedScanAddressFmt, err)
		}
		addresses = append(addresses, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf(errFailedListAddressesFmt, err)
	}

	return addresses, count, nil
}

func (r *AddressRepository) Update(ctx context.Context, id uuid.UUID, input address.UpdateAddressInput) (*address.DeliveryAddress, error) {
	query := `
		UPDATE delivery_addresses
		SET label = COALESCE($2, label),
		    province = COALESCE($3, province),
		    city = COALESCE($4, city),
		    district = COALESCE($5, district),
		    subdistrict = COALESCE($6, subdistrict),
		    detail = COALESCE($7, detail),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING` + addressColumns

	a, err := scanAddress(r.db.Pool.QueryRow(ctx, query,
		id, input.Label, input.Province, input.City,
		input.District, input.Subdistrict, input.Detail))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errAddressNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateAddressFmt, err)
	}

	return a, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM delivery_addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteAddressFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errAddressNotFound)
	}
	return nil
}

func scanAddress(row pgx.Row) (*address.DeliveryAddress, error) {
	a := &address.DeliveryAddress{}
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Label,
		&a.Province,
		&a.City,
		&a.District,
		&a.Subdistrict,
		&a.Detail,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
