package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	mr, rdb := setupRateLimitRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "signup", "u1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := CheckRateLimit(ctx, rdb, "signup", "u1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request should be limited")

	// Separate identities get their own budget
	allowed, err = CheckRateLimit(ctx, rdb, "signup", "u2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Window expiry resets the counter
	mr.FastForward(2 * time.Minute)
	allowed, err = CheckRateLimit(ctx, rdb, "signup", "u1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitDisabledInTestEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	// No Redis needed when disabled
	allowed, err := CheckRateLimit(context.Background(), nil, "signup", "u1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, rdb := setupRateLimitRedis(t)

	app := fiber.New()
	app.Get("/limited", RateLimit(rdb, 2, time.Minute, "limited"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

func TestRateLimitFailOpenWithoutRedis(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	app := fiber.New()
	app.Get("/open", RateLimit(nil, 1, time.Minute, "open"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/closed", RateLimitWithPolicy(nil, 1, time.Minute, FailClosed, "closed"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/closed", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
