package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotAuthenticated = errors.New("no credentials stored for session")

// Realm is an independent authentication domain. The customer and admin
// realms keep separate tokens and profiles; clearing one never touches the
// other.
type Realm string

const (
	RealmCustomer Realm = "customer"
	RealmAdmin    Realm = "admin"
)

// LoginPath is where the browser is sent after the realm's credentials are
// rejected by the backend.
func (r Realm) LoginPath() string {
	if r == RealmAdmin {
		return "/admin/login"
	}
	return "/login"
}

func (r Realm) tokenKey(sessionID string) string {
	return fmt.Sprintf("gvn:%s:token:%s", r, sessionID)
}

func (r Realm) profileKey(sessionID string) string {
	return fmt.Sprintf("gvn:%s:profile:%s", r, sessionID)
}

// FallbackTokenGetter supplies a bearer token when durable storage has none,
// covering sessions established through an external identity flow that has
// not yet been synced into Redis.
type FallbackTokenGetter func(ctx context.Context, sessionID string) (string, bool)

// CredentialRepository stores one realm's bearer token and profile per
// browser session. A token without a profile (or the reverse) counts as
// unauthenticated.
type CredentialRepository struct {
	rdb      *redis.Client
	realm    Realm
	ttl      time.Duration
	fallback FallbackTokenGetter
}

// NewCredentialRepository creates a credential store scoped to one realm.
func NewCredentialRepository(rdb *redis.Client, realm Realm, ttl time.Duration) *CredentialRepository {
	return &CredentialRepository{rdb: rdb, realm: realm, ttl: ttl}
}

// SetFallbackTokenGetter installs the in-memory token source consulted when
// Redis has no token for the session.
func (c *CredentialRepository) SetFallbackTokenGetter(fn FallbackTokenGetter) {
	c.fallback = fn
}

// Realm returns the realm this repository serves.
func (c *CredentialRepository) Realm() Realm {
	return c.realm
}

// SetAuth stores the token and profile together.
func (c *CredentialRepository) SetAuth(ctx context.Context, sessionID, token string, profile any) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := c.rdb.Set(ctx, c.realm.tokenKey(sessionID), token, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := c.rdb.Set(ctx, c.realm.profileKey(sessionID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

// Token looks up the session's bearer token, preferring durable storage and
// falling back to the injected getter.
func (c *CredentialRepository) Token(ctx context.Context, sessionID string) (string, bool) {
	token, err := c.rdb.Get(ctx, c.realm.tokenKey(sessionID)).Result()
	if err == nil && token != "" {
		return token, true
	}
	if c.fallback != nil {
		if t, ok := c.fallback(ctx, sessionID); ok && t != "" {
			return t, true
		}
	}
	return "", false
}

// Profile decodes the stored profile into dst. Returns false when absent.
func (c *CredentialRepository) Profile(ctx context.Context, sessionID string, dst any) (bool, error) {
	data, err := c.rdb.Get(ctx, c.realm.profileKey(sessionID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode profile: %w", err)
	}
	return true, nil
}

// IsAuthenticated reports whether both a token and a profile are stored.
// Either one alone is treated as unauthenticated.
func (c *CredentialRepository) IsAuthenticated(ctx context.Context, sessionID string) bool {
	if _, err := c.rdb.Get(ctx, c.realm.tokenKey(sessionID)).Result(); err != nil {
		return false
	}
	if _, err := c.rdb.Get(ctx, c.realm.profileKey(sessionID)).Result(); err != nil {
		return false
	}
	return true
}

// ClearAuth removes the realm's token and profile for the session. Clearing
// an already-empty session is not an error.
func (c *CredentialRepository) ClearAuth(ctx context.Context, sessionID string) error {
	if err := c.rdb.Del(ctx, c.realm.tokenKey(sessionID), c.realm.profileKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
