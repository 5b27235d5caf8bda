package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrisur/config"
	"nutrisur/infras/otel/mocks"
	"nutrisur/shared/cache"
	cacheMocks "nutrisur/shared/cache/mocks"
	"nutrisur/shared/clock"
	"nutrisur/shared/constant"
	"nutrisur/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// 20 seconds into a 60 second window
var limiterNow = time.Date(2025, 6, 1, 9, 0, 20, 0, time.UTC)

func newLimited(t *testing.T, redisCache cache.RedisCache, enable bool) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache, clock.Fixed(limiterNow))

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func limitedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

	return req
}

func TestRateLimit(t *testing.T) {
	windowKey := "limiter:203.0.113.7:29146140"

	t.Run("first request in a window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), windowKey, gomock.Any()).Return(cache.Nil)
		redisCache.EXPECT().Save(gomock.Any(), windowKey, 1, 40).Return(nil)

		rec := httptest.NewRecorder()
		newLimited(t, redisCache, true).ServeHTTP(rec, limitedRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "40", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("over the limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().
			Get(gomock.Any(), windowKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				*(dest.(*int)) = 3

				return nil
			})

		rec := httptest.NewRecorder()
		newLimited(t, redisCache, true).ServeHTTP(rec, limitedRequest())

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("cache outage fails open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		newLimited(t, redisCache, true).ServeHTTP(rec, limitedRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := httptest.NewRecorder()
		newLimited(t, cacheMocks.NewMockRedisCache(ctrl), false).ServeHTTP(rec, limitedRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
