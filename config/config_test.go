package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kitty-doom.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[input]
arrow_delay_ms = 200

[render]
policy = "retransmit"
compress = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input.ArrowDelayMs != 200 {
		t.Errorf("arrow delay = %d, want 200", cfg.Input.ArrowDelayMs)
	}
	if cfg.Input.ActionDelayMs != 50 {
		t.Errorf("action delay lost its default: %d", cfg.Input.ActionDelayMs)
	}
	if cfg.Render.Policy != "retransmit" || !cfg.Render.Compress {
		t.Errorf("render config not applied: %+v", cfg.Render)
	}
	if cfg.Render.ChunkBytes != 4096 {
		t.Errorf("chunk size lost its default: %d", cfg.Render.ChunkBytes)
	}
}

func TestLoadDebugToggle(t *testing.T) {
	path := writeConfig(t, "debug = true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug toggle from file not applied")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeConfig(t, "[input\narrow_delay_ms = ")
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML accepted")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"[render]\npolicy = \"telepathy\"",
		"[input]\narrow_delay_ms = -1",
		"[render]\ndiff_threshold_percent = 101",
		"[render]\nchunk_bytes = 0",
	}
	for _, content := range cases {
		path := writeConfig(t, content)
		if _, err := Load(path); err == nil {
			t.Errorf("invalid config accepted: %q", content)
		}
	}
}
