package session_test

import (
	"context"
	"errors"
	"testing"

	"commerce-service/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const testTokenTTL = 0 // no expiry in tests

func newRedisStore(t *testing.T) *session.RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStore(client, testTokenTTL)
}

// stores returns each implementation under its own name so every contract
// test runs against both.
func stores(t *testing.T) map[string]session.Store {
	t.Helper()
	return map[string]session.Store{
		"redis":  newRedisStore(t),
		"memory": session.NewMemoryStore(),
	}
}

func TestAddAndFindOwner(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()

			if err := store.AddToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("AddToken: %v", err)
			}

			owner, err := store.FindOwner(ctx, "tok-1")
			if err != nil {
				t.Fatalf("FindOwner: %v", err)
			}
			if owner != userID {
				t.Errorf("FindOwner = %s, expected %s", owner, userID)
			}
		})
	}
}

func TestFindOwnerUnknownToken(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.FindOwner(context.Background(), "never-issued")
			if !errors.Is(err, session.ErrSessionNotFound) {
				t.Errorf("FindOwner = %v, expected ErrSessionNotFound", err)
			}
		})
	}
}

func TestRemoveTokenRevokes(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()

			if err := store.AddToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("AddToken: %v", err)
			}
			if err := store.RemoveToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("RemoveToken: %v", err)
			}

			if _, err := store.FindOwner(ctx, "tok-1"); !errors.Is(err, session.ErrSessionNotFound) {
				t.Errorf("FindOwner after remove = %v, expected ErrSessionNotFound", err)
			}
		})
	}
}

func TestRemoveTokenIsIdempotent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()

			if err := store.AddToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("AddToken: %v", err)
			}
			if err := store.RemoveToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("first RemoveToken: %v", err)
			}
			if err := store.RemoveToken(ctx, userID, "tok-1"); err != nil {
				t.Errorf("second RemoveToken should not fail, got: %v", err)
			}
		})
	}
}

func TestTokenSetIsAdditive(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()

			// Two concurrent sessions for the same user.
			if err := store.AddToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("AddToken: %v", err)
			}
			if err := store.AddToken(ctx, userID, "tok-2"); err != nil {
				t.Fatalf("AddToken: %v", err)
			}

			// Logging out one session leaves the other live.
			if err := store.RemoveToken(ctx, userID, "tok-1"); err != nil {
				t.Fatalf("RemoveToken: %v", err)
			}

			owner, err := store.FindOwner(ctx, "tok-2")
			if err != nil {
				t.Fatalf("FindOwner(tok-2): %v", err)
			}
			if owner != userID {
				t.Errorf("FindOwner(tok-2) = %s, expected %s", owner, userID)
			}
		})
	}
}

func TestRedisReverseIndexWithoutMembership(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := session.NewRedisStore(client, testTokenTTL)

	ctx := context.Background()
	userID := uuid.New()

	if err := store.AddToken(ctx, userID, "tok-1"); err != nil {
		t.Fatalf("AddToken: %v", err)
	}

	// Simulate a set mutation that bypassed the reverse index. The set is
	// authoritative, so the session must read as dead.
	if err := client.SRem(ctx, "sessions:"+userID.String(), "tok-1").Err(); err != nil {
		t.Fatalf("SRem: %v", err)
	}

	if _, err := store.FindOwner(ctx, "tok-1"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("FindOwner = %v, expected ErrSessionNotFound", err)
	}
}
