package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("expected default cache ttl 5m, got %v", cfg.CacheTTL)
	}
	if cfg.DefaultPageSize != 10 {
		t.Fatalf("expected default page size 10, got %d", cfg.DefaultPageSize)
	}
}

func TestLoadOverridesAndInvalidValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("invalid int should fall back to 10, got %d", cfg.DBMaxConns)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Fatalf("expected 30m access ttl, got %v", cfg.AccessTTL)
	}
	if !cfg.MailSendEnabled {
		t.Fatal("expected mail sending enabled")
	}
}

func TestCORSOriginsTrimsAndSkipsEmpty(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
