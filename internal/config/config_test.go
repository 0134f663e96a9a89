package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load("", envFrom(nil))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnvironment(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "labunify.yaml")
	content := "db_path: /var/lib/labunify/terms.db\nport: \"9090\"\ndefault_threshold: 70\ngraph_cache_size: 16\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, envFrom(map[string]string{
		"PORT":             "7070",
		"LOG_LEVEL":        "debug",
		"GRAPH_CACHE_SIZE": "0",
	}))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := Config{
		DBPath:           "/var/lib/labunify/terms.db",
		Port:             "7070",
		LogLevel:         "debug",
		DefaultThreshold: 70,
		GraphCacheSize:   0,
		DefaultLanguage:  "uk",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := []map[string]string{
		{"DEFAULT_THRESHOLD": "high"},
		{"DEFAULT_THRESHOLD": "101"},
		{"GRAPH_CACHE_SIZE": "-1"},
		{"GRAPH_CACHE_SIZE": "many"},
		{"PORT": "http"},
	}
	for _, env := range cases {
		if _, err := Load("", envFrom(env)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Load(%v) expected ErrInvalidConfig, got %v", env, err)
		}
	}
}

func TestLoadReportsBrokenFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), envFrom(nil)); err == nil {
		t.Fatal("expected error for missing config file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("port: [1, 2"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, envFrom(nil)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for malformed yaml, got %v", err)
	}
}
