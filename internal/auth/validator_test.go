package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"commerce-service/internal/ability"
	"commerce-service/internal/auth"
	"commerce-service/internal/session"

	"github.com/google/uuid"
)

func newValidator(t *testing.T) (*auth.SessionValidator, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	return auth.NewSessionValidator(codec, store), store
}

func TestSessionLifecycle(t *testing.T) {
	validator, _ := newValidator(t)
	ctx := context.Background()
	p := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	// Login: issue registers the token as a live session.
	raw, err := validator.Issue(ctx, p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := validator.Validate(ctx, raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.ID != p.ID || got.Role != p.Role {
		t.Errorf("Validate = %+v, expected %+v", got, p)
	}

	// Logout: the token's signature still verifies, but the session is dead.
	if err := validator.Revoke(ctx, raw); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	_, err = validator.Validate(ctx, raw)
	if !errors.Is(err, auth.ErrSessionRevoked) {
		t.Errorf("Validate after revoke = %v, expected ErrSessionRevoked", err)
	}
}

func TestRevokeIsNotSilentlyIdempotent(t *testing.T) {
	validator, _ := newValidator(t)
	ctx := context.Background()
	p := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	raw, err := validator.Issue(ctx, p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := validator.Revoke(ctx, raw); err != nil {
		t.Fatalf("first Revoke: %v", err)
	}

	err = validator.Revoke(ctx, raw)
	if !errors.Is(err, auth.ErrSessionNotFound) {
		t.Errorf("second Revoke = %v, expected ErrSessionNotFound", err)
	}
}

func TestRevokeUnknownToken(t *testing.T) {
	validator, _ := newValidator(t)

	err := validator.Revoke(context.Background(), "never-issued")
	if !errors.Is(err, auth.ErrSessionNotFound) {
		t.Errorf("Revoke unknown token = %v, expected ErrSessionNotFound", err)
	}
}

func TestValidateUnregisteredToken(t *testing.T) {
	validator, _ := newValidator(t)
	ctx := context.Background()

	// A well-signed token that was never added to any token set: signed by
	// us but not a live session.
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	raw, err := codec.Issue(ability.Principal{ID: uuid.New(), Role: ability.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = validator.Validate(ctx, raw)
	if !errors.Is(err, auth.ErrSessionRevoked) {
		t.Errorf("Validate = %v, expected ErrSessionRevoked", err)
	}
}

func TestValidateSignatureFailureSkipsStore(t *testing.T) {
	validator, store := newValidator(t)
	ctx := context.Background()

	// Register garbage under a user to prove membership alone cannot
	// resurrect a token that fails verification.
	userID := uuid.New()
	if err := store.AddToken(ctx, userID, "garbage-token"); err != nil {
		t.Fatalf("AddToken: %v", err)
	}

	_, err := validator.Validate(ctx, "garbage-token")
	if !errors.Is(err, auth.ErrTokenMalformed) {
		t.Errorf("Validate = %v, expected ErrTokenMalformed", err)
	}
}

func TestConcurrentSessions(t *testing.T) {
	validator, _ := newValidator(t)
	ctx := context.Background()
	p := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	first, err := validator.Issue(ctx, p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := validator.Issue(ctx, p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Logging out the first session leaves the second live.
	if err := validator.Revoke(ctx, first); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if _, err := validator.Validate(ctx, second); err != nil {
		t.Errorf("second session should still be live, got: %v", err)
	}
}
