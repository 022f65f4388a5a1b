package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "DATA_SOURCE", "DATA_BASE_PATH", "REQUEST_TIMEOUT", "FETCH_RETRIES", "RELOAD_INTERVAL", "RELOAD_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DataSource != DataSourceCSV || cfg.DataBasePath != "data/" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestTimeout != 15*time.Second || cfg.FetchRetries != 2 || cfg.ReloadInterval != 0 {
		t.Errorf("unexpected fetch defaults %+v", cfg)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("DATA_SOURCE", "database")
	t.Setenv("DATA_BASE_PATH", "https://example.com/data/")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("FETCH_RETRIES", "5")
	t.Setenv("RELOAD_INTERVAL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() || cfg.DataSource != DataSourceDatabase {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second || cfg.FetchRetries != 5 || cfg.ReloadInterval != 10*time.Minute {
		t.Errorf("unexpected durations %+v", cfg)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("FETCH_RETRIES", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 15*time.Second || cfg.FetchRetries != 2 {
		t.Errorf("expected defaults, got %v / %d", cfg.RequestTimeout, cfg.FetchRetries)
	}
}

func TestLoad_UnknownDataSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "ftp")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown data source")
	}
}
