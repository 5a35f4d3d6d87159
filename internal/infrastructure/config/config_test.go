package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected default token ttl 24h, got %s", cfg.JWTTTL)
	}
	if cfg.Postgres.MaxConns != 10 {
		t.Fatalf("expected default pool size 10, got %d", cfg.Postgres.MaxConns)
	}
	if !cfg.RateLimit.Enabled {
		t.Fatalf("expected rate limiting on by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.JWTTTL != time.Hour {
		t.Fatalf("expected token ttl 1h, got %s", cfg.JWTTTL)
	}
	if cfg.RateLimit.Enabled {
		t.Fatalf("expected rate limiting off")
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Fatalf("expected redis addr override, got %s", cfg.Redis.Addr)
	}
}
