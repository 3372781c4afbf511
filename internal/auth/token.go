package auth

import (
	"errors"
	"fmt"
	"time"

	"commerce-service/internal/ability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure kinds. Verification fails closed: callers distinguish
// a structurally broken token from a stale or forged one when choosing an
// HTTP status, so each kind is a separate sentinel.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
)

// Claims carried by a session token: the principal's identity plus role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies compact session tokens with a symmetric
// secret held as process-wide configuration.
type TokenCodec struct {
	secret []byte
	expiry time.Duration
}

func NewTokenCodec(secret string, expiry time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Expiry returns the lifetime encoded into issued tokens.
func (c *TokenCodec) Expiry() time.Duration {
	return c.expiry
}

// Issue signs a token for the principal. The token is only half a session:
// it does not denote a live session until added to the principal's token set.
func (c *TokenCodec) Issue(p ability.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique jti keeps two logins in the same second from
			// minting byte-identical tokens.
			ID:        uuid.NewString(),
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the token's signature and time bounds and decodes the
// principal. Signature verification is pure computation: no I/O, no locks.
func (c *TokenCodec) Verify(raw string) (ability.Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return ability.Principal{}, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return ability.Principal{}, fmt.Errorf("%w: %s", ErrTokenMalformed, msgInvalidTokenClaims)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ability.Principal{}, fmt.Errorf("%w: %s", ErrTokenMalformed, msgInvalidTokenClaims)
	}

	return ability.Principal{ID: id, Role: ability.ParseRole(claims.Role)}, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
