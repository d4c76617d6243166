package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/backend/internal/testhelpers"
)

func TestRateLimiterCounts(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewRateLimiter(client, RateLimitConfig{Window: time.Hour, Limit: 2, KeyPrefix: "test"})
	ctx := context.Background()

	remaining, _, err := rl.GetRemainingRequests(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	for i, want := range []bool{true, true, false} {
		allowed, _, reset, err := rl.IsAllowed(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, want, allowed, "request %d", i+1)
		assert.True(t, reset.After(time.Now()))
	}

	remaining, _, err = rl.GetRemainingRequests(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, remaining)

	remaining, _, err = rl.GetRemainingRequests(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining, "ids are counted separately")
}

func TestIPRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := testhelpers.SetupRedis(t)
	rl := NewLoginRateLimiter(client, 1, time.Minute)

	router := gin.New()
	router.POST("/login", rl.IPRateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "rate limit exceeded")
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewareRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRecipeCreationRateLimiter(nil)

	router := gin.New()
	router.POST("/recipes", rl.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recipes", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := testhelpers.SetupRedis(t)
	rl := NewRecipeModificationRateLimiter(client)
	require.NoError(t, client.Close())

	userID := uuid.New()
	router := gin.New()
	router.PUT("/recipes/:id", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, rl.PerRecipeRateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/recipes/abc", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}
