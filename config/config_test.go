package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "TEST_DATABASE_URL", "DATABASE_NAME", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Storage.URL != "mongodb://localhost:27017" {
		t.Errorf("expected default database URL, got %s", cfg.Storage.URL)
	}
	if cfg.Storage.Database != "blogapi" {
		t.Errorf("expected default database name blogapi, got %s", cfg.Storage.Database)
	}
	if cfg.Metrics.Enabled {
		t.Error("expected metrics disabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://db.internal:27017")
	t.Setenv("DATABASE_NAME", "blog_prod")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("TEST_DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.URL != "mongodb://db.internal:27017" {
		t.Errorf("database URL = %s, want mongodb://db.internal:27017", cfg.Storage.URL)
	}
	if cfg.Storage.Database != "blog_prod" {
		t.Errorf("database name = %s, want blog_prod", cfg.Storage.Database)
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected metrics enabled")
	}
}

func TestLoad_TestDatabaseURLOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://db.internal:27017")
	t.Setenv("TEST_DATABASE_URL", "mongodb://127.0.0.1:55001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.URL != "mongodb://127.0.0.1:55001" {
		t.Errorf("database URL = %s, want the TEST_DATABASE_URL value", cfg.Storage.URL)
	}
}

func TestLoad_InvalidMetricsFlag(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Metrics.Enabled {
		t.Error("unparseable METRICS_ENABLED should fall back to disabled")
	}
}
