package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Addr != defaultAddr {
		t.Fatalf("http.addr=%q, want %q", cfg.HTTP.Addr, defaultAddr)
	}
	if cfg.DB.Path != defaultDBPath {
		t.Fatalf("db.path=%q, want %q", cfg.DB.Path, defaultDBPath)
	}
	if cfg.Tariff.Default != "new" {
		t.Fatalf("tariff.default=%q, want new", cfg.Tariff.Default)
	}
	rate, err := cfg.VATRate()
	if err != nil {
		t.Fatalf("VATRate: %v", err)
	}
	if rate.String() != "0.18" {
		t.Fatalf("vat rate=%s, want 0.18", rate)
	}
	if cfg.App.Env != "dev" || !cfg.Metrics.Enabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "tokenwatt.yaml")
	content := []byte(`
app:
  env: prod
http:
  addr: ":9090"
tariff:
  default: old
  vat_rate: "0.16"
metrics:
  enabled: false
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TOKENWATT_HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("http.addr=%q, want env override :7070", cfg.HTTP.Addr)
	}
	if cfg.Tariff.Default != "old" {
		t.Fatalf("tariff.default=%q, want old", cfg.Tariff.Default)
	}
	if cfg.App.Env != "prod" || cfg.Metrics.Enabled {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoad_RejectsBadVATRate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TOKENWATT_TARIFF_VAT_RATE", "abc")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected vat rate error")
	}

	t.Setenv("TOKENWATT_TARIFF_VAT_RATE", "-0.1")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected negative vat rate error")
	}
}
