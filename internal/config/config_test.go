package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.JWTTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day token window, got %s", cfg.JWTTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.SearchReindexSchedule != "@every 15m" {
		t.Errorf("unexpected reindex schedule: %q", cfg.SearchReindexSchedule)
	}
	if cfg.LoginRateLimit != 10 || cfg.LoginRateWindow != time.Minute {
		t.Errorf("unexpected login throttle: %d per %s", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_TTL", "a week")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed JWT_TTL")
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset in production")
	}
}
