package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoarena/backend-go/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupLimiter(t *testing.T, limit, window int64) (RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{AuthRateLimit: limit, AuthRateWindow: window}
	return NewRateLimiterWithClient(client, cfg, testLogger()), mr
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		limiter, _ := setupLimiter(t, 3, 60)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(ctx, "rate:auth:1.2.3.4")
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should pass", i+1)
		}

		allowed, err := limiter.Allow(ctx, "rate:auth:1.2.3.4")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("keys are counted independently", func(t *testing.T) {
		limiter, _ := setupLimiter(t, 1, 60)
		ctx := context.Background()

		allowed, err := limiter.Allow(ctx, "rate:auth:1.1.1.1")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "rate:auth:2.2.2.2")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		limiter, mr := setupLimiter(t, 1, 60)
		ctx := context.Background()

		allowed, err := limiter.Allow(ctx, "rate:auth:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, _ = limiter.Allow(ctx, "rate:auth:1.2.3.4")
		assert.False(t, allowed)

		mr.FastForward(61 * time.Second)

		allowed, err = limiter.Allow(ctx, "rate:auth:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		limiter, mr := setupLimiter(t, 1, 60)
		mr.Close()

		allowed, err := limiter.Allow(context.Background(), "rate:auth:1.2.3.4")
		assert.Error(t, err)
		assert.True(t, allowed)
	})
}

func TestLimitByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(limiter RateLimiter) *gin.Engine {
		r := gin.New()
		r.POST("/login", LimitByClientIP(limiter, testLogger()), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("blocked client gets 429", func(t *testing.T) {
		limiter, _ := setupLimiter(t, 2, 60)
		r := newRouter(limiter)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("no-op limiter never blocks", func(t *testing.T) {
		r := newRouter(NewNoOpRateLimiter(testLogger()))

		for i := 0; i < 20; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
