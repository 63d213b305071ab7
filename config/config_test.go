package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "duoguard" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug in development")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug log level in development, got %q", cfg.Logging.Level)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Store.Path != "duoguard.db" {
		t.Errorf("expected default store path, got %q", cfg.Store.Path)
	}
	if cfg.Observability.ServiceName != "duoguard" {
		t.Errorf("expected observability service name, got %q", cfg.Observability.ServiceName)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.Secret = "test-secret"
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Environment = "testing"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
name: duoguard
environment: production
server:
  port: 9090
auth:
  secret: yaml-secret
store:
  path: ":memory:"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("duoguard", WithConfigFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected production, got %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "yaml-secret" {
		t.Errorf("expected yaml secret, got %q", cfg.Auth.Secret)
	}
	if cfg.Store.Path != ":memory:" {
		t.Errorf("expected in-memory store, got %q", cfg.Store.Path)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
name: duoguard
auth:
  secret: yaml-secret
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("AUTH_SECRET", "env-secret")

	cfg, err := Load("duoguard", WithConfigFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("expected env to win, got %q", cfg.Auth.Secret)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("AUTH_TOKEN_TTL")
	want := map[string]bool{
		"auth_token_ttl": false,
		"auth.token.ttl": false,
		"auth.token_ttl": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Errorf("missing variant %q in %v", key, variants)
		}
	}
}
