package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History.MaxSizeMB != 100 {
		t.Errorf("expected default max size 100, got %d", cfg.History.MaxSizeMB)
	}
	if !strings.HasSuffix(cfg.History.Path, filepath.Join("gosh", "history.jsonl")) {
		t.Errorf("unexpected default history path: %q", cfg.History.Path)
	}
	if cfg.Profile == "" {
		t.Error("expected a default profile path")
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
history:
  path: ~/custom/history.jsonl
  max_size_mb: 5
prompt:
  suffix: "% "
env:
  PAGER: cat
profile: ~/.my_profile
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History.MaxSizeMB != 5 {
		t.Errorf("expected max size 5, got %d", cfg.History.MaxSizeMB)
	}

	home, _ := os.UserHomeDir()
	if cfg.History.Path != filepath.Join(home, "custom", "history.jsonl") {
		t.Errorf("~ not expanded in history path: %q", cfg.History.Path)
	}
	if cfg.Profile != filepath.Join(home, ".my_profile") {
		t.Errorf("~ not expanded in profile path: %q", cfg.Profile)
	}
	if cfg.Prompt.Suffix != "% " {
		t.Errorf("expected custom prompt suffix, got %q", cfg.Prompt.Suffix)
	}
	if cfg.Env["PAGER"] != "cat" {
		t.Errorf("expected env overlay, got %v", cfg.Env)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history: ["), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}
