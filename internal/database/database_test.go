package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHealthUp(t *testing.T) {
	mr := miniredis.RunT(t)
	svc := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer svc.Close()

	health := svc.Health(context.Background())
	if health["status"] != "up" {
		t.Errorf("status = %q, want up", health["status"])
	}
	if _, ok := health["total_conns"]; !ok {
		t.Error("expected pool stats in health snapshot")
	}
}

func TestHealthDown(t *testing.T) {
	mr := miniredis.RunT(t)
	svc := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	health := svc.Health(context.Background())
	if health["status"] != "down" {
		t.Errorf("status = %q, want down", health["status"])
	}
	if health["error"] == "" {
		t.Error("expected an error message when redis is unreachable")
	}
}
