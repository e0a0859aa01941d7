package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gvnatural/internal/domain"
	"gvnatural/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func requestWithSession(sid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/", nil)
	ctx := context.WithValue(req.Context(), SessionIDKey, sid)
	return req.WithContext(ctx)
}

func TestRequireRealmAllowsAuthenticatedSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	creds := repository.NewCredentialRepository(rdb, repository.RealmCustomer, time.Hour)

	if err := creds.SetAuth(context.Background(), "sid-1", "token", domain.User{ID: "u1"}); err != nil {
		t.Fatalf("SetAuth returned error: %v", err)
	}

	called := false
	handler := RequireRealm(creds, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSession("sid-1"))

	if !called {
		t.Error("authenticated session must pass the gate")
	}
}

func TestRequireRealmRejectsUnauthenticatedSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	creds := repository.NewCredentialRepository(rdb, repository.RealmAdmin, time.Hour)

	handler := RequireRealm(creds, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for unauthenticated session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSession("sid-1"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response is not structured JSON: %v", err)
	}
	if redirect, _ := resp.Error.Details["redirect"].(string); redirect != "/admin/login" {
		t.Errorf("redirect = %q, want /admin/login", redirect)
	}
}

func TestRequireRealmRejectsMissingSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	creds := repository.NewCredentialRepository(rdb, repository.RealmCustomer, time.Hour)

	handler := RequireRealm(creds, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}
