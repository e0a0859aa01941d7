package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddlewareEnforcesWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := RateLimitMiddleware(rdb, RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		KeyPrefix:         "test:rl",
	}, nil, zap.NewNop())

	handler := limiter(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}

	// A different client is unaffected
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status %d, want 200", rec.Code)
	}
}

func TestRateLimitMiddlewareFailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	limiter := RateLimitMiddleware(rdb, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		KeyPrefix:         "test:rl",
	}, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	limiter(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status %d, want 200 when redis is down", rec.Code)
	}
}

func TestPhoneKeyBucketsByPhone(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`{"phone":"+919876543210"}`))
	req.RemoteAddr = "10.0.0.1:1234"

	if key := PhoneKey(req); key != "+919876543210" {
		t.Errorf("key = %q, want the phone number", key)
	}

	// Body must still be readable by the handler
	body, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("body read failed after PhoneKey: %v", err)
	}
	if !strings.Contains(string(body), "+919876543210") {
		t.Errorf("body not restored: %s", body)
	}
}

func TestPhoneKeyFallsBackToClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`not json`))
	req.RemoteAddr = "10.0.0.9:4321"

	if key := PhoneKey(req); key != "10.0.0.9:4321" {
		t.Errorf("key = %q, want the client address", key)
	}
}

func TestPhoneKeyCooldownFollowsPhoneAcrossClients(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := RateLimitMiddleware(rdb, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            60 * time.Second,
		KeyPrefix:         "test:otp",
	}, PhoneKey, zap.NewNop())

	handler := limiter(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`{"phone":"+919876543210"}`))
	first.RemoteAddr = "10.0.0.1:1111"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first send: status %d, want 200", rec.Code)
	}

	// Same phone from another address is still in cooldown
	second := httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`{"phone":"+919876543210"}`))
	second.RemoteAddr = "10.0.0.2:2222"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("resend within cooldown: status %d, want 429", rec.Code)
	}

	// After the window the phone may resend
	mr.FastForward(61 * time.Second)
	third := httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`{"phone":"+919876543210"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, third)
	if rec.Code != http.StatusOK {
		t.Errorf("send after cooldown: status %d, want 200", rec.Code)
	}
}
