package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.Host != "postgres" || cfg.DB.Port != 5432 {
		t.Fatalf("db defaults = %s:%d, want postgres:5432", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("http addr = %s, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("log defaults = %s/%s, want info/json", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Redis.CacheTTLSec != 60 {
		t.Fatalf("cache ttl = %d, want 60", cfg.Redis.CacheTTLSec)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_CACHE_TTL_SEC", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 6432 {
		t.Fatalf("db = %s:%d, want db.internal:6432", cfg.DB.Host, cfg.DB.Port)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("http addr = %s, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %s, want debug", cfg.Log.Level)
	}
	if cfg.Redis.CacheTTLSec != 0 {
		t.Fatalf("cache ttl = %d, want 0", cfg.Redis.CacheTTLSec)
	}
}

func TestGetEnvIntBadValue(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.Port != 5432 {
		t.Fatalf("port = %d, want the 5432 default on a bad value", cfg.DB.Port)
	}
}
