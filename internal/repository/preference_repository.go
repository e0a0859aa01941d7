package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PreferenceRepository stores small per-session UI preferences. Currently
// only the theme choice.
type PreferenceRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPreferenceRepository(rdb *redis.Client, ttl time.Duration) *PreferenceRepository {
	return &PreferenceRepository{rdb: rdb, ttl: ttl}
}

func themeKey(sessionID string) string {
	return "gvn:pref:theme:" + sessionID
}

// Theme returns the stored theme, or the default "light" when unset.
func (p *PreferenceRepository) Theme(ctx context.Context, sessionID string) (string, error) {
	theme, err := p.rdb.Get(ctx, themeKey(sessionID)).Result()
	if err == redis.Nil {
		return "light", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	return theme, nil
}

func (p *PreferenceRepository) SetTheme(ctx context.Context, sessionID, theme string) error {
	if err := p.rdb.Set(ctx, themeKey(sessionID), theme, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}
