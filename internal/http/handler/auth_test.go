package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"commerce-service/internal/auth"
	"commerce-service/internal/domain/user"
	"commerce-service/internal/session"
	apperrors "commerce-service/pkg/errors"
	"commerce-service/pkg/password"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "k9f2mWq7xR4vL8nJ3pT6yB1cZ5hG0dSa"

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	if _, exists := r.byEmail[input.Email]; exists {
		return nil, apperrors.Conflict("email already registered")
	}

	u := &user.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: input.Password,
		Role:         input.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id uuid.UUID, input user.UpdateUserInput) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	if input.FullName != nil {
		u.FullName = *input.FullName
	}
	if input.PasswordHash != nil {
		u.PasswordHash = *input.PasswordHash
	}
	return u, nil
}

type authFixture struct {
	handler  *AuthHandler
	repo     *fakeUserRepo
	sessions *auth.SessionValidator
	echo     *echo.Echo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := newFakeUserRepo()
	codec := auth.NewTokenCodec(testJWTSecret, time.Hour)
	sessions := auth.NewSessionValidator(codec, session.NewMemoryStore())

	return &authFixture{
		handler:  NewAuthHandler(repo, sessions, nil),
		repo:     repo,
		sessions: sessions,
		echo:     echo.New(),
	}
}

func (f *authFixture) jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return f.echo.NewContext(req, rec), rec
}

func (f *authFixture) register(t *testing.T, fullName, email, pw string) UserResponse {
	t.Helper()

	body, err := json.Marshal(RegisterRequest{FullName: fullName, Email: email, Password: pw})
	require.NoError(t, err)

	c, rec := f.jsonRequest(http.MethodPost, "/auth/register", string(body))
	require.NoError(t, f.handler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (f *authFixture) login(t *testing.T, email, pw string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	body, err := json.Marshal(LoginRequest{Email: email, Password: pw})
	require.NoError(t, err)

	c, rec := f.jsonRequest(http.MethodPost, "/auth/login", string(body))
	require.NoError(t, f.handler.Login(c))

	var resp TokenResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return resp.Token, rec
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture(t)

	created := f.register(t, "Jane Customer", "jane@example.com", "s3cret-password")
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "user", created.Role)

	// Password hashes never leak into responses.
	stored := f.repo.byEmail["jane@example.com"]
	assert.NotEqual(t, "s3cret-password", stored.PasswordHash)
	assert.True(t, password.Verify("s3cret-password", stored.PasswordHash))

	token, rec := f.login(t, "jane@example.com", "s3cret-password")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, token)

	p, err := f.sessions.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, p.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Jane Customer", "jane@example.com", "s3cret-password")

	body, _ := json.Marshal(RegisterRequest{FullName: "Other Jane", Email: "jane@example.com", Password: "another-password"})
	c, rec := f.jsonRequest(http.MethodPost, "/auth/register", string(body))
	require.NoError(t, f.handler.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"short name", RegisterRequest{FullName: "J", Email: "jane@example.com", Password: "s3cret-password"}},
		{"bad email", RegisterRequest{FullName: "Jane Customer", Email: "not-an-email", Password: "s3cret-password"}},
		{"short password", RegisterRequest{FullName: "Jane Customer", Email: "jane@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			c, rec := f.jsonRequest(http.MethodPost, "/auth/register", string(body))
			require.NoError(t, f.handler.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Jane Customer", "jane@example.com", "s3cret-password")

	_, rec := f.login(t, "jane@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown emails get the same answer as wrong passwords.
	_, rec = f.login(t, "nobody@example.com", "s3cret-password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Jane Customer", "jane@example.com", "s3cret-password")
	token, _ := f.login(t, "jane@example.com", "s3cret-password")

	c, rec := f.jsonRequest(http.MethodPost, "/api/auth/logout", "")
	c.Set(auth.ContextKeyRawToken, token)
	require.NoError(t, f.handler.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The token still verifies cryptographically but the session is dead.
	_, err := f.sessions.Validate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)

	// A second logout with the same token is not silently idempotent.
	c, rec = f.jsonRequest(http.MethodPost, "/api/auth/logout", "")
	c.Set(auth.ContextKeyRawToken, token)
	require.NoError(t, f.handler.Logout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutWithoutToken(t *testing.T) {
	f := newAuthFixture(t)

	c, rec := f.jsonRequest(http.MethodPost, "/api/auth/logout", "")
	require.NoError(t, f.handler.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)
	created := f.register(t, "Jane Customer", "jane@example.com", "s3cret-password")

	stored := f.repo.byEmail["jane@example.com"]

	c, rec := f.jsonRequest(http.MethodGet, "/api/auth/me", "")
	c.Set(auth.ContextKeyPrincipal, stored.Principal())
	require.NoError(t, f.handler.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "Jane Customer", resp.FullName)
}
