package auth

import (
	"errors"
	"net/http"

	"commerce-service/internal/ability"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AbilityMiddleware guards routes with the declarative ability rules. It
// must run after DecodeToken so the request principal is set.
type AbilityMiddleware struct {
	loader repository.ResourceLoader
}

func NewAbilityMiddleware(loader repository.ResourceLoader) *AbilityMiddleware {
	return &AbilityMiddleware{loader: loader}
}

// RequireCan checks an unconditional permission. Condition-bearing rules do
// not match a check without an instance, so routes whose policy is
// ownership-scoped must use RequireCanOwn instead.
func (m *AbilityMiddleware) RequireCan(action ability.Action, subject ability.Subject) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if !ability.PolicyFor(p).Can(action, subject, nil) {
				return respondError(c, http.StatusForbidden, msgForbidden)
			}
			return next(c)
		}
	}
}

// RequireCanOwn loads the resource named by the id route parameter and
// checks the permission against it, so ownership conditions can match.
func (m *AbilityMiddleware) RequireCanOwn(action ability.Action, subject ability.Subject, idParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Param(idParam))
			if err != nil {
				return respondError(c, http.StatusBadRequest, msgInvalidResourceID)
			}

			resource, err := m.loader.Load(c.Request().Context(), subject, id)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return respondError(c, http.StatusNotFound, msgResourceNotFound)
				}
				c.Logger().Errorf("resource load failed: %v", err)
				return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}

			p := PrincipalFrom(c)
			if !ability.PolicyFor(p).Can(action, subject, resource) {
				return respondError(c, http.StatusForbidden, msgForbidden)
			}

			return next(c)
		}
	}
}
