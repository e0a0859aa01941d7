package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gvnatural/internal/config"

	"github.com/redis/go-redis/v9"
)

// Service wraps the Redis client that backs all session-scoped gateway
// state: carts, realm credentials, preferences and rate-limit counters.
// Everything else (products, orders, users, payments, shipments) lives in
// the external commerce backend and is never stored here.
type Service struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(cfg config.RedisConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Service{client: client}, nil
}

// NewWithClient wraps an existing client. Used by tests with miniredis.
func NewWithClient(client *redis.Client) *Service {
	return &Service{client: client}
}

// Client exposes the underlying Redis client for repositories.
func (s *Service) Client() *redis.Client {
	return s.client
}

// Health returns a status snapshot for the health endpoint.
func (s *Service) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	if err := s.client.Ping(ctx).Err(); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	stats["status"] = "up"
	pool := s.client.PoolStats()
	stats["total_conns"] = strconv.FormatUint(uint64(pool.TotalConns), 10)
	stats["idle_conns"] = strconv.FormatUint(uint64(pool.IdleConns), 10)
	stats["hits"] = strconv.FormatUint(uint64(pool.Hits), 10)
	stats["misses"] = strconv.FormatUint(uint64(pool.Misses), 10)

	return stats
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
