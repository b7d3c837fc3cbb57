package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
white_bg = true
colors = 8
bins = "30,20"

[serve]
addr = ":9000"
cache = "memory"

[palettes.ocean]
codes = [17, 24, 31, 38]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.WhiteBG || cfg.Colors != 8 || cfg.Bins != "30,20" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Serve.Addr != ":9000" || cfg.Serve.Cache != "memory" {
		t.Errorf("serve = %+v", cfg.Serve)
	}
	if len(cfg.Palettes["ocean"].Codes) != 4 {
		t.Errorf("palettes = %+v", cfg.Palettes)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.Colors != 0 {
		t.Errorf("cfg should be zero, got %+v", cfg)
	}
}

func TestLoadConfigBadPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[palettes.bad]\ncodes = [300]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("out-of-range color code should fail")
	}
}
