package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORAGE_DRIVER", "MAX_PAGE_SIZE", "RATE_LIMIT_PER_MINUTE", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, StoragePostgres)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %d, want 0", cfg.RateLimit)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("MAX_PAGE_SIZE", "25")
	t.Setenv("MAX_DB_CONNS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.StorageDriver != StorageMemory {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, StorageMemory)
	}
	if cfg.MaxPageSize != 25 {
		t.Errorf("MaxPageSize = %d, want 25", cfg.MaxPageSize)
	}
	if cfg.MaxDBConns != 16 {
		t.Errorf("MaxDBConns = %d, want fallback 16", cfg.MaxDBConns)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://a.test" || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestRateLimitKeyWindow(t *testing.T) {
	at := time.Unix(120, 0)
	a := CacheKey.RateLimitKey("10.0.0.1", time.Minute, at)
	b := CacheKey.RateLimitKey("10.0.0.1", time.Minute, at.Add(59*time.Second))
	c := CacheKey.RateLimitKey("10.0.0.1", time.Minute, at.Add(time.Minute))

	if a != "ratelimit:10.0.0.1:2" {
		t.Fatalf("key = %q", a)
	}
	if a != b {
		t.Errorf("keys in same window differ: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("keys in different windows are equal: %q", a)
	}
}

func TestRateLimitKeySubSecondWindow(t *testing.T) {
	at := time.Unix(120, 0)
	for _, window := range []time.Duration{0, time.Millisecond, 999 * time.Millisecond} {
		if got := CacheKey.RateLimitKey("10.0.0.1", window, at); got != "ratelimit:10.0.0.1:120" {
			t.Errorf("window %v: key = %q", window, got)
		}
	}
}
