package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "alanfl.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTemp(t, `
entry: main.alan
intCacheMin: -10
intCacheMax: 10
decimalPrecision: 256
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Entry != "main.alan" {
		t.Fatalf("got entry %q", cfg.Entry)
	}
	min, max := cfg.CacheBounds()
	if min != -10 || max != 10 {
		t.Fatalf("got bounds %d, %d", min, max)
	}
}

func TestLoadRejectsInvertedCacheBounds(t *testing.T) {
	path := writeTemp(t, `
intCacheMin: 10
intCacheMax: -10
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestLoadRejectsIncompleteGitBlock(t *testing.T) {
	path := writeTemp(t, `
git:
  url: https://example.com/repo.git
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a validation error for missing git.ref")
	}
}

func TestDefaultCacheBoundsFallBackToRuntimeConstants(t *testing.T) {
	cfg := Default()
	min, max := cfg.CacheBounds()
	if min != -127 || max != 127 {
		t.Fatalf("got bounds %d, %d", min, max)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
