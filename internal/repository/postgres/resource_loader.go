package postgres

import (
	"context"
	"fmt"

	"commerce-service/internal/ability"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
)

// ResourceLoader resolves subject-typed identifiers into the field maps the
// ability evaluator matches ownership conditions against. Only the fields
// conditions reference are loaded; handlers fetch full entities through the
// typed repositories.
type ResourceLoader struct {
	db *DB
}

func NewResourceLoader(db *DB) *ResourceLoader {
	return &ResourceLoader{db: db}
}

func (l *ResourceLoader) Load(ctx context.Context, subject ability.Subject, id uuid.UUID) (ability.Resource, error) {
	switch subject {
	case ability.SubjectOrder:
		return l.loadOwned(ctx, `SELECT user_id FROM orders WHERE id = $1`, id, errOrderNotFound)
	case ability.SubjectDeliveryAddress:
		return l.loadOwned(ctx, `SELECT user_id FROM delivery_addresses WHERE id = $1`, id, errAddressNotFound)
	case ability.SubjectInvoice:
		// Invoices are addressed by their order id.
		return l.loadOwned(ctx, `SELECT user_id FROM invoices WHERE order_id = $1`, id, errInvoiceNotFound)
	case ability.SubjectUser:
		return l.loadUser(ctx, id)
	case ability.SubjectCart:
		// A cart is identified by its owner; no query is needed.
		return ability.Resource{ability.FieldUserID: id}, nil
	default:
		return nil, apperrors.BadRequest(fmt.Sprintf("cannot load resource of type %q", subject))
	}
}

func (l *ResourceLoader) loadOwned(ctx context.Context, query string, id uuid.UUID, notFoundMsg string) (ability.Resource, error) {
	var ownerID uuid.UUID
	err := l.db.Pool.QueryRow(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(notFoundMsg)
		}
		return nil, fmt.Errorf(errFailedLoadResourceFmt, err)
	}

	return ability.Resource{
		ability.FieldID:     id,
		ability.FieldUserID: ownerID,
	}, nil
}

func (l *ResourceLoader) loadUser(ctx context.Context, id uuid.UUID) (ability.Resource, error) {
	var userID uuid.UUID
	err := l.db.Pool.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, id).Scan(&userID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, fmt.Errorf(errFailedLoadResourceFmt, err)
	}

	return ability.Resource{ability.FieldID: userID}, nil
}
