package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "formdoc.yaml")
	raw := `renderer: markdown
dsl_extensions: [".java", ".groovy"]
log:
  level: debug
watch:
  debounce: 1s
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.DSLExtensions) != 2 || cfg.DSLExtensions[1] != ".groovy" {
		t.Fatalf("dsl extensions = %v", cfg.DSLExtensions)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	if cfg.Debounce() != time.Second {
		t.Fatalf("debounce = %v, want 1s", cfg.Debounce())
	}
	// Untouched keys keep their defaults.
	if len(cfg.StructuredExtensions) != 1 || cfg.StructuredExtensions[0] != ".xml" {
		t.Fatalf("structured extensions = %v", cfg.StructuredExtensions)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "formdoc.yaml")
	if err := os.WriteFile(path, []byte("renderer: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestDebounceFallsBackOnInvalidValue(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Watch.Debounce = "not-a-duration"
	if cfg.Debounce() != 200*time.Millisecond {
		t.Fatalf("debounce = %v, want fallback", cfg.Debounce())
	}
}
