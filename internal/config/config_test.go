package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"prematch/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Matching.DefaultHours != 24 {
		t.Fatalf("unexpected default hours: %d", cfg.Matching.DefaultHours)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.toml")
	body := "[paths]\ndata_dir = \"" + filepath.Join(dir, "data") + "\"\n\n[matching]\naudit_path = \"~/renames.jsonl\"\n\n[logging]\nlevel = \"DEBUG\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v path=%s", exists, resolved)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", cfg.Logging.Level)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "data", "prematch.db") {
		t.Fatalf("unexpected database path: %s", cfg.DatabasePath())
	}
	if cfg.Matching.AuditPath != filepath.Join(dir, "renames.jsonl") {
		t.Fatalf("audit path not expanded: %q", cfg.Matching.AuditPath)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for logging.format")
	}

	cfg = config.Default()
	cfg.Matching.DefaultHours = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for matching.default_hours")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
