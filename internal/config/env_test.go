package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ADDR", "")
	t.Setenv("DEFAULT_CURRENCY", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.AppAddr != ":8080" {
		t.Fatalf("default addr = %q", env.AppAddr)
	}
	if env.DefaultCurrency != "USD" {
		t.Fatalf("default currency = %q", env.DefaultCurrency)
	}
	if !env.MetricsEnabled {
		t.Fatalf("metrics should be enabled by default")
	}
}

func TestLoadEnvFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "app_addr: \":9000\"\ndefault_currency: EUR\nmax_open_conns: 5\ncors_allowed_origins:\n  - https://a.example\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_ADDR", ":7000")
	t.Setenv("DEFAULT_CURRENCY", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.AppAddr != ":7000" {
		t.Fatalf("env var should override file, got %q", env.AppAddr)
	}
	if env.DefaultCurrency != "EUR" {
		t.Fatalf("currency from file = %q", env.DefaultCurrency)
	}
	if env.MaxOpenConns != 5 {
		t.Fatalf("max open conns from file = %d", env.MaxOpenConns)
	}
	if len(env.CORSOrigins) != 1 || env.CORSOrigins[0] != "https://a.example" {
		t.Fatalf("cors origins from file = %v", env.CORSOrigins)
	}
}

func TestLoadEnvBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("app_addr: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := LoadEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("splitList = %v", got)
	}
}
