package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{EnvStorageKey, EnvShareURL, EnvExportDir, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFile() returned unexpected error: %v", err)
	}
	if cfg.StorageKey != "cost-estimator-prices-v3" {
		t.Errorf("StorageKey = %q", cfg.StorageKey)
	}
	if cfg.ShareURL != "http://127.0.0.1:8090/" {
		t.Errorf("ShareURL = %q", cfg.ShareURL)
	}
	if cfg.ExportDir != "." || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvStorageKey, "my-key")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFile() returned unexpected error: %v", err)
	}
	if cfg.StorageKey != "my-key" || cfg.LogFormat != "json" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv(EnvExportDir, "")
	os.Unsetenv(EnvExportDir)
	t.Setenv(EnvShareURL, "https://kalkyl.example.se/")

	path := filepath.Join(t.TempDir(), ".env")
	body := "DRIFTCALC_EXPORT_DIR=/tmp/exports\nDRIFTCALC_SHARE_URL=http://ignored.example/\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvExportDir) })

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() returned unexpected error: %v", err)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("ExportDir = %q, want value from .env", cfg.ExportDir)
	}
	if cfg.ShareURL != "https://kalkyl.example.se/" {
		t.Errorf("ShareURL = %q, environment should win over .env", cfg.ShareURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log format", EnvLogFormat, "xml"},
		{"bad share url", EnvShareURL, "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
