package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected Default(), got %+v", cfg)
	}
}

func TestLoadOverlaysOntoDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minilang.yaml")
	if err := os.WriteFile(path, []byte("banner: false\ncache_path: /tmp/mini.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Banner {
		t.Fatal("expected banner to be overridden to false")
	}
	if cfg.CachePath != "/tmp/mini.db" {
		t.Fatalf("got %q", cfg.CachePath)
	}
	if cfg.TraceDefault != Default().TraceDefault {
		t.Fatal("expected unspecified field to keep default value")
	}
}
