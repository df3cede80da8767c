package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	d := Default()
	if d.UninitializedSize != 16 || d.GrowthNumerator != 3 || d.GrowthDenominator != 2 {
		t.Fatalf("Default() = %+v, want {16 3 2}", d)
	}
}

func TestLoadMissingArraySectionFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrayrt.toml")
	if err := os.WriteFile(path, []byte("[unrelated]\nx = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load without [store] = %+v, want defaults", cfg)
	}
}

func TestLoadValidOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrayrt.toml")
	content := "[store]\nuninitialized_size = 32\ngrowth_numerator = 2\ngrowth_denominator = 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UninitializedSize != 32 || cfg.GrowthNumerator != 2 || cfg.GrowthDenominator != 1 {
		t.Fatalf("Load = %+v, want {32 2 1}", cfg)
	}
}

func TestLoadRejectsInvalidGrowthFactor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrayrt.toml")
	content := "[store]\nuninitialized_size = 16\ngrowth_numerator = 1\ngrowth_denominator = 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("a growth factor below 1.0 must be rejected")
	}
}

func TestCapacityDelegatesToGrowCapacity(t *testing.T) {
	c := Default()
	if got := c.Capacity(4, 5); got < 5 {
		t.Fatalf("Capacity(4, 5) = %d, want >= 5", got)
	}
}
