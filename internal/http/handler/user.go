package handler

import (
	"errors"
	"net/http"
	"strings"

	"commerce-service/internal/domain/user"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/password"
	"commerce-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

// Update changes a user's own profile. Ownership is enforced by the route's
// ability check; admins pass it for any id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	var req UpdateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	input := user.UpdateUserInput{}

	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if err := validator.FullName(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		input.FullName = &trimmed
	}

	if req.Password != nil {
		if err := validator.Password(*req.Password); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
		}
		input.PasswordHash = &hash
	}

	u, err := h.userRepo.Update(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgUserNotExist)
		}
		return respondError(c, http.StatusInternalServerError, msgUpdateUserFail)
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}
