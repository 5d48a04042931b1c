package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.ServerPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("expected default driver %q, got %q", StorageDriverMemory, cfg.StorageDriver)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Database.UseSSL {
		t.Errorf("expected ssl off by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORAGE_DRIVER", StorageDriverPostgres)
	t.Setenv("DB_SSL", "true")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "toor")

	cfg := LoadConfig()

	if cfg.ServerPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.ServerPort)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("unexpected jwt secret %q", cfg.JWTSecret)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.StorageDriver)
	}
	if !cfg.Database.UseSSL {
		t.Errorf("expected ssl on")
	}
	if cfg.Admin.Username != "root" || cfg.Admin.Password != "toor" {
		t.Errorf("unexpected admin config: %+v", cfg.Admin)
	}
}
