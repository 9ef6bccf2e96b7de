package config

import (
	"os"
	"testing"
)

func TestDefaultProducesRunnableWorldSection(t *testing.T) {
	cfg := Default()
	if cfg.World.StartYear != -5000 || cfg.World.EndYear != 2050 {
		t.Fatalf("want start=-5000 end=2050, got start=%d end=%d", cfg.World.StartYear, cfg.World.EndYear)
	}
	if cfg.World.RNGSeedMode != "fixed" {
		t.Fatalf("expected default RNGSeedMode 'fixed', got %q", cfg.World.RNGSeedMode)
	}
	if cfg.ContentHash != "" {
		t.Fatalf("expected compiled defaults to carry no content hash, got %q", cfg.ContentHash)
	}
}

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	cfg := Load("")
	if cfg != Default() {
		t.Fatal("expected Load(\"\") to return the compiled defaults unchanged")
	}
}

func TestLoadWithMissingFileFallsBackToDefaults(t *testing.T) {
	cfg := Load("/nonexistent/path/does-not-exist.toml")
	if cfg != Default() {
		t.Fatal("expected a missing config file to fall back to compiled defaults rather than fail the run")
	}
}

func TestLoadWithUnparseableFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.toml"
	if err := writeFile(path, "this is not [valid toml"); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	cfg := Load(path)
	if cfg != Default() {
		t.Fatal("expected an unparseable config file to fall back to compiled defaults")
	}
}

func TestLoadOverridesNamedKeysAndStampsContentHash(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/partial.toml"
	body := "[world]\nstartYear = -2000\n"
	if err := writeFile(path, body); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	cfg := Load(path)
	if cfg.World.StartYear != -2000 {
		t.Fatalf("expected overridden startYear -2000, got %d", cfg.World.StartYear)
	}
	if cfg.World.EndYear != Default().World.EndYear {
		t.Fatalf("expected unspecified endYear to retain its compiled default, got %d", cfg.World.EndYear)
	}
	if cfg.ContentHash == "" {
		t.Fatal("expected a non-empty content hash after parsing a real file")
	}
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
