package auth

import (
	"errors"
	"net/http"
	"strings"

	"commerce-service/internal/ability"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	validator *SessionValidator
}

func NewMiddleware(validator *SessionValidator) *Middleware {
	return &Middleware{validator: validator}
}

// DecodeToken authenticates the request's bearer token, if any. Requests
// without a token proceed as the guest principal; requests with a dead token
// are rejected so a stale client never silently degrades to guest access.
func (m *Middleware) DecodeToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				c.Set(ContextKeyPrincipal, ability.Guest)
				return next(c)
			}

			p, err := m.validator.Validate(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, ErrSessionRevoked):
					return respondError(c, http.StatusUnauthorized, msgSessionRevoked)
				case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenMalformed):
					return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
				default:
					c.Logger().Errorf("session validation failed: %v", err)
					return respondError(c, http.StatusInternalServerError, msgSessionCheckFailed)
				}
			}

			c.Set(ContextKeyPrincipal, p)
			c.Set(ContextKeyRawToken, token)

			return next(c)
		}
	}
}

// RequireAuth rejects guests. It must run after DecodeToken.
func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c).Role == ability.RoleGuest {
				return respondError(c, http.StatusUnauthorized, msgNotLoggedIn)
			}
			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

// PrincipalFrom returns the request's principal, or the guest principal when
// DecodeToken did not run or found no token.
func PrincipalFrom(c echo.Context) ability.Principal {
	if p, ok := c.Get(ContextKeyPrincipal).(ability.Principal); ok {
		return p
	}
	return ability.Guest
}

// RawTokenFrom returns the raw bearer token the principal authenticated
// with, or "" for guests.
func RawTokenFrom(c echo.Context) string {
	if token, ok := c.Get(ContextKeyRawToken).(string); ok {
		return token
	}
	return ""
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
