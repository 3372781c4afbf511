// Package session tracks the set of live tokens per user (the TokenSet).
// A signed token is only a live session while it is a member of its owner's
// set; removing it there revokes the session even though the signature
// remains valid until expiry.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a token is not a member of any user's
// token set.
var ErrSessionNotFound = errors.New("session not found")

// Store is the session registry. AddToken and RemoveToken must be atomic
// with respect to concurrent logins and logouts for the same user; multiple
// server instances may share one store, so the atomicity is the store's,
// not in-process locking.
type Store interface {
	// AddToken registers a token as a live session for the user. Token sets
	// are additive: a new login never displaces still-active sessions.
	AddToken(ctx context.Context, userID uuid.UUID, token string) error

	// RemoveToken removes a token from the user's set. Removing a token
	// that is not present is not an error.
	RemoveToken(ctx context.Context, userID uuid.UUID, token string) error

	// FindOwner returns the user whose token set contains the token, or
	// ErrSessionNotFound.
	FindOwner(ctx context.Context, token string) (uuid.UUID, error)
}
