package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerWindow int           // Number of requests allowed per window
	Window            time.Duration // Time window for rate limiting
	KeyPrefix         string        // Redis key prefix
}

// KeyFunc derives the rate-limit bucket for a request. The default buckets
// by client address; the OTP resend limiter buckets by phone number instead
// so the cooldown follows the account, not the connection.
type KeyFunc func(r *http.Request) string

func clientAddrKey(r *http.Request) string {
	return r.RemoteAddr
}

// PhoneKey buckets by the phone number in the JSON body, restoring the body
// for the handler. Requests without a readable phone fall back to the
// client address.
func PhoneKey(r *http.Request) string {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return r.RemoteAddr
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.Phone == "" {
		return r.RemoteAddr
	}
	return req.Phone
}

// RateLimitMiddleware implements fixed-window rate limiting in Redis. Used
// on the login routes and, with a 1-per-60s window keyed by phone, as the
// OTP resend cooldown.
func RateLimitMiddleware(redisClient *redis.Client, config RateLimitConfig, keyFn KeyFunc, logger *zap.Logger) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = clientAddrKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("%s:%s", config.KeyPrefix, keyFn(r))

			ctx := context.Background()

			count, err := redisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.Error("Failed to increment rate limit counter",
					zap.Error(err),
					zap.String("key", key),
				)
				// On Redis error, allow request to proceed
				next.ServeHTTP(w, r)
				return
			}

			// Set expiry on first request
			if count == 1 {
				redisClient.Expire(ctx, key, config.Window)
			}

			if count > int64(config.RequestsPerWindow) {
				ttl, err := redisClient.TTL(ctx, key).Result()
				if err != nil {
					ttl = config.Window
				}

				logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.Int64("count", count),
					zap.Int("limit", config.RequestsPerWindow),
				)

				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))

				RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			remaining := config.RequestsPerWindow - int(count)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			next.ServeHTTP(w, r)
		})
	}
}
