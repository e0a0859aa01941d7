package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gvnatural/internal/domain"

	"github.com/redis/go-redis/v9"
)

// CartRepository persists cart entries per browser session. Persistence is
// best-effort: callers keep mutating their in-memory cart even when a save
// fails, so Load must degrade to an empty cart rather than surface storage
// problems as user-facing errors.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartEntry, error)
	Save(ctx context.Context, sessionID string, entries []domain.CartEntry) error
	Clear(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCartRepository creates a Redis-backed CartRepository. Entries expire
// with the session TTL.
func NewCartRepository(rdb *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "gvn:cart:" + sessionID
}

// Load returns the stored entries for the session. A missing key or
// undecodable payload yields an empty cart, never an error.
func (r *cartRepository) Load(ctx context.Context, sessionID string) ([]domain.CartEntry, error) {
	data, err := r.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var entries []domain.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Stored state is unreadable; treat it the same as absent.
		return nil, nil
	}
	return entries, nil
}

// Save replaces the stored entries for the session.
func (r *cartRepository) Save(ctx context.Context, sessionID string, entries []domain.CartEntry) error {
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.rdb.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear deletes the stored cart for the session.
func (r *cartRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
