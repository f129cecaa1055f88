package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("SCADA_CONFIG_DIR", t.TempDir())

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := Resolve(v)
	if s.LogLevel != "warn" || s.Format != "text" || s.Glyphs != "unicode" || !s.Watch || s.PreviewLines != 200 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCADA_CONFIG_DIR", dir)
	cfg := "log_level: debug\nformat: json\ntui:\n  glyphs: ascii\n  watch: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCADA_FORMAT", "edn")
	t.Setenv("SCADA_TUI_PREVIEW_LINES", "50")

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := Resolve(v)
	if s.LogLevel != "debug" {
		t.Fatalf("log level = %q", s.LogLevel)
	}
	if s.Format != "edn" {
		t.Fatalf("env should override file, format = %q", s.Format)
	}
	if s.Glyphs != "ascii" || s.Watch {
		t.Fatalf("tui settings not read: %+v", s)
	}
	if s.PreviewLines != 50 {
		t.Fatalf("preview lines = %d", s.PreviewLines)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for a missing explicit config file")
	}
}
