package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"commerce-service/internal/ability"
	"commerce-service/internal/auth"

	"github.com/google/uuid"
)

const testSecret = "test-secret-0123456789-abcdefghijklmnop"

func newCodec(t *testing.T, expiry time.Duration) *auth.TokenCodec {
	t.Helper()
	return auth.NewTokenCodec(testSecret, expiry)
}

func TestIssueAndVerify(t *testing.T) {
	codec := newCodec(t, time.Hour)
	p := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	raw, err := codec.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if got.ID != p.ID {
		t.Errorf("principal ID = %s, expected %s", got.ID, p.ID)
	}
	if got.Role != ability.RoleUser {
		t.Errorf("principal role = %s, expected user", got.Role)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	codec := newCodec(t, time.Hour)
	p := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	raw, err := codec.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}

	// Flip each byte of the signed payload in turn; every mutation must be
	// rejected as a signature failure, never decoded as a different
	// principal.
	payload := []byte(parts[1])
	for i := range payload {
		mutated := make([]byte, len(payload))
		copy(mutated, payload)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == parts[1] {
			continue
		}

		tampered := parts[0] + "." + string(mutated) + "." + parts[2]
		_, err := codec.Verify(tampered)
		if err == nil {
			t.Fatalf("tampered token at byte %d verified", i)
		}
		if !errors.Is(err, auth.ErrInvalidSignature) && !errors.Is(err, auth.ErrTokenMalformed) {
			t.Errorf("tampered token at byte %d: error kind = %v", i, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := newCodec(t, time.Hour)
	other := auth.NewTokenCodec("another-secret-9876543210-zyxwvutsrq", time.Hour)

	raw, err := codec.Issue(ability.Principal{ID: uuid.New(), Role: ability.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = other.Verify(raw)
	if !errors.Is(err, auth.ErrInvalidSignature) {
		t.Errorf("Verify with wrong secret = %v, expected ErrInvalidSignature", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := newCodec(t, -time.Minute)

	raw, err := codec.Issue(ability.Principal{ID: uuid.New(), Role: ability.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = codec.Verify(raw)
	if !errors.Is(err, auth.ErrTokenExpired) {
		t.Errorf("Verify expired token = %v, expected ErrTokenExpired", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	codec := newCodec(t, time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{"Garbage", "not-a-token"},
		{"Empty", ""},
		{"Two segments", "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.raw)
			if !errors.Is(err, auth.ErrTokenMalformed) {
				t.Errorf("Verify(%q) = %v, expected ErrTokenMalformed", tt.raw, err)
			}
		})
	}
}

func TestVerifyUnknownRoleFallsBackToGuest(t *testing.T) {
	codec := newCodec(t, time.Hour)

	raw, err := codec.Issue(ability.Principal{ID: uuid.New(), Role: ability.Role("superuser")})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	p, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.Role != ability.RoleGuest {
		t.Errorf("role = %s, expected guest fallback", p.Role)
	}
}
