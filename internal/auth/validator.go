package auth

import (
	"context"
	"errors"
	"fmt"

	"commerce-service/internal/ability"
	"commerce-service/internal/session"
)

// Session failure kinds, distinct from token verification failures: the
// token was structurally valid but no longer denotes a live session.
var (
	// ErrSessionRevoked is returned when a well-signed token is absent from
	// its owner's token set — logged out or never issued by this system.
	ErrSessionRevoked = errors.New("session revoked or unknown")
	// ErrSessionNotFound is returned by Revoke when the token is not a
	// member of any token set.
	ErrSessionNotFound = session.ErrSessionNotFound
)

const (
	errIssueTokenFmt      = "failed to issue token: %w"
	errRegisterSessionFmt = "failed to register session: %w"
	errSessionLookupFmt   = "session lookup failed: %w"
)

// SessionValidator composes the token codec with the session store: a token
// denotes a live session iff it verifies cryptographically AND is present in
// its principal's token set. Either failing alone makes it dead.
type SessionValidator struct {
	codec *TokenCodec
	store session.Store
}

func NewSessionValidator(codec *TokenCodec, store session.Store) *SessionValidator {
	return &SessionValidator{
		codec: codec,
		store: store,
	}
}

// Issue signs a token for the principal and registers it as a live session.
// The token set is additive: a new login leaves still-active sessions alone.
func (v *SessionValidator) Issue(ctx context.Context, p ability.Principal) (string, error) {
	token, err := v.codec.Issue(p)
	if err != nil {
		return "", fmt.Errorf(errIssueTokenFmt, err)
	}

	if err := v.store.AddToken(ctx, p.ID, token); err != nil {
		return "", fmt.Errorf(errRegisterSessionFmt, err)
	}

	return token, nil
}

// Validate authenticates a raw token. Signature verification runs first
// because it is cheap and needs no I/O; only a well-signed token is worth a
// store round trip. A verifying token that is absent from its owner's set
// yields ErrSessionRevoked — this is what makes logout effective even though
// the token stays cryptographically valid until its encoded expiry.
func (v *SessionValidator) Validate(ctx context.Context, raw string) (ability.Principal, error) {
	p, err := v.codec.Verify(raw)
	if err != nil {
		return ability.Principal{}, err
	}

	owner, err := v.store.FindOwner(ctx, raw)
	if errors.Is(err, session.ErrSessionNotFound) {
		return ability.Principal{}, ErrSessionRevoked
	}
	if err != nil {
		return ability.Principal{}, fmt.Errorf(errSessionLookupFmt, err)
	}

	if owner != p.ID {
		return ability.Principal{}, ErrSessionRevoked
	}

	return p, nil
}

// Revoke removes a raw token from its owner's token set. The owner is
// located by membership, not by decoding the token, so even a token whose
// signature no longer verifies can be revoked. Revoking a token that is not
// in any set reports ErrSessionNotFound; a second revoke of the same token
// therefore surfaces not-found rather than succeeding silently.
func (v *SessionValidator) Revoke(ctx context.Context, raw string) error {
	owner, err := v.store.FindOwner(ctx, raw)
	if err != nil {
		return err
	}

	return v.store.RemoveToken(ctx, owner, raw)
}
