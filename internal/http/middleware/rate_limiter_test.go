package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce-service/internal/ability"
	"commerce-service/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2) // 2 req/sec, burst of 2

	assert.True(t, rl.Allow("test-key"))
	assert.True(t, rl.Allow("test-key"))

	// Third request should be rate limited
	assert.False(t, rl.Allow("test-key"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 2)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	middleware := rl.Middleware()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Third request should be rate limited
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	// Different keys should have independent rate limits
	assert.True(t, rl.Allow("key1"))
	assert.True(t, rl.Allow("key2"))

	assert.False(t, rl.Allow("key1"))
	assert.False(t, rl.Allow("key2"))
}

func TestRateLimiter_PerPrincipalBuckets(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	middleware := rl.Middleware()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	request := func(p *ability.Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if p != nil {
			c.Set(auth.ContextKeyPrincipal, *p)
		}

		assert.NoError(t, middleware(handler)(c))
		return rec.Code
	}

	alice := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}
	bob := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	// A user exhausting their bucket does not affect other users or guests
	// coming from the same IP.
	assert.Equal(t, http.StatusOK, request(&alice))
	assert.Equal(t, http.StatusTooManyRequests, request(&alice))
	assert.Equal(t, http.StatusOK, request(&bob))
	assert.Equal(t, http.StatusOK, request(nil))
	assert.Equal(t, http.StatusTooManyRequests, request(nil))
}
