package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	for _, c := range []struct {
		src  string
		want config
	}{
		{`{}`, defaultConfig()},
		{
			`{
				// step without waiting
				"nostep": true,
				"delay": "150ms",
				"cell": 24,
				"history": false, // trailing comma
			}`,
			config{NoStep: true, Delay: 150 * time.Millisecond, Cell: 24, History: false},
		},
		{`{"delay": "1s"}`, config{Delay: time.Second, Cell: 16, History: true}},
	} {
		got, err := parseConfig(defaultConfig(), []byte(c.src))
		if err != nil {
			t.Errorf("parseConfig(%s): %v", c.src, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("parseConfig(%s) mismatch (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestParseConfigErrors(t *testing.T) {
	for _, src := range []string{
		`{"delay": "soon"}`,
		`{"delay": "-1s"}`,
		`{"cell": 2}`,
		`{"nostep": "yes"}`,
		`{`,
	} {
		if _, err := parseConfig(defaultConfig(), []byte(src)); err == nil {
			t.Errorf("parseConfig(%s) succeeded, want error", src)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No file: defaults.
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	// Explicit file must exist.
	if _, err := loadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("loadConfig of missing file succeeded")
	}

	if err := os.MkdirAll(filepath.Join(dir, "tux"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tux", "config.json"), []byte(`{"nostep": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.NoStep {
		t.Error("config from XDG_CONFIG_HOME not loaded")
	}
}
