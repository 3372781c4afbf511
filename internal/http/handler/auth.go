package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"commerce-service/internal/ability"
	"commerce-service/internal/audit"
	"commerce-service/internal/auth"
	"commerce-service/internal/domain/user"
	"commerce-service/internal/repository"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/password"
	"commerce-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	userRepo repository.UserRepository
	sessions *auth.SessionValidator
	audit    *audit.Logger
}

func NewAuthHandler(userRepo repository.UserRepository, sessions *auth.SessionValidator, auditLogger *audit.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		sessions: sessions,
		audit:    auditLogger,
	}
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := validator.FullName(req.FullName); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	u, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: passwordHash,
		Role:     string(ability.RoleUser),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrEmailExists) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		return respondError(c, http.StatusInternalServerError, msgCreateAccountFail)
	}

	h.audit.LogFromContext(c, audit.ResourceTypeUser, &u.ID, audit.ActionRegister, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	u, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "user not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		password.Verify(req.Password, dummyBcryptHash)
		h.audit.LogFromContext(c, audit.ResourceTypeSession, nil, audit.ActionLogin, audit.StatusFailure, nil)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		h.audit.LogFromContext(c, audit.ResourceTypeSession, &u.ID, audit.ActionLogin, audit.StatusFailure, nil)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.sessions.Issue(c.Request().Context(), u.Principal())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgIssueTokenFail)
	}

	// The request is authenticated from here on; attribute the audit event
	// to the user rather than to a guest.
	c.Set(auth.ContextKeyPrincipal, u.Principal())
	h.audit.LogFromContext(c, audit.ResourceTypeSession, &u.ID, audit.ActionLogin, audit.StatusSuccess, nil)

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Logout revokes the presented session token. Revoking a token that is not in
// any token set reports not-found: a second logout with the same token fails
// rather than silently succeeding.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := auth.RawTokenFrom(c)
	if token == "" {
		return respondError(c, http.StatusBadRequest, msgTokenNotFound)
	}

	if err := h.sessions.Revoke(c.Request().Context(), token); err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return respondError(c, http.StatusNotFound, msgSessionNotFound)
		}
		return respondError(c, http.StatusInternalServerError, msgLogoutFail)
	}

	h.audit.LogFromContext(c, audit.ResourceTypeSession, nil, audit.ActionLogout, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgLoggedOut)
}

func (h *AuthHandler) Me(c echo.Context) error {
	p := auth.PrincipalFrom(c)

	u, err := h.userRepo.GetByID(c.Request().Context(), p.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgSessionNotFound)
		}
		return respondError(c, http.StatusInternalServerError, msgFetchProfileFail)
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
