package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotient.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Stopping.MinItems >= cfg.Stopping.MaxItems {
		t.Errorf("min %d must be below max %d", cfg.Stopping.MinItems, cfg.Stopping.MaxItems)
	}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if reg.Len() != 6 {
		t.Errorf("Registry().Len() = %d, want 6", reg.Len())
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
stopping:
  se_threshold: 0.25
  max_items: 24
  min_items: 8
  balance_waiver_items: 16
  stability_delta: 0.02
  stability_se_margin: 1.25
selection:
  top_k: 3
  soft_tolerance: 0.05
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Stopping.SEThreshold != 0.25 {
		t.Errorf("SEThreshold = %v, want 0.25", cfg.Stopping.SEThreshold)
	}
	if cfg.Selection.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.Selection.TopK)
	}
	// Untouched sections keep defaults.
	if len(cfg.Domains) != 6 {
		t.Errorf("Domains = %d, want default 6", len(cfg.Domains))
	}
	if got := cfg.SelectionConfig().MaxItems; got != 24 {
		t.Errorf("SelectionConfig().MaxItems = %d, want 24 from stopping section", got)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
domains:
  - tag: solo
    target_share: 0.5
    min_items: 1
`)
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for shares not summing to 1")
	}

	path = writeConfig(t, `stopping: {min_items: 30, max_items: 20, se_threshold: 0.3}`)
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for min > max")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
