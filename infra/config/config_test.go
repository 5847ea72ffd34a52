package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("BLOGTTY_API", "https://blog.example.com/")
	t.Setenv("BLOGTTY_PAGE_SIZE", "25")
	t.Setenv("BLOGTTY_TOKEN", "")
	t.Setenv("BLOGTTY_LOG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://blog.example.com" {
		t.Fatalf("unexpected base url: %q", cfg.APIBaseURL)
	}
	if cfg.PageSize != 25 {
		t.Fatalf("unexpected page size: %d", cfg.PageSize)
	}
	if cfg.TokenPath == "" || cfg.StatePath == "" || cfg.CacheDir == "" {
		t.Fatalf("expected default paths, got %+v", cfg)
	}
}

func TestLoad_RequiresBaseURL(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("BLOGTTY_API", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without BLOGTTY_API")
	}
}

func TestLoad_RejectsBadScheme(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("BLOGTTY_API", "ftp://blog.example.com")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "http") {
		t.Fatalf("expected scheme error, got: %v", err)
	}
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "api_base_url: https://file.example.com\npage_size: 7\nlog_path: /tmp/blogtty.log\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	t.Setenv("BLOGTTY_CONFIG", path)
	t.Setenv("BLOGTTY_API", "")
	t.Setenv("BLOGTTY_PAGE_SIZE", "")
	t.Setenv("BLOGTTY_LOG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://file.example.com" {
		t.Fatalf("unexpected base url: %q", cfg.APIBaseURL)
	}
	if cfg.PageSize != 7 {
		t.Fatalf("unexpected page size: %d", cfg.PageSize)
	}
	if cfg.LogPath != "/tmp/blogtty.log" {
		t.Fatalf("unexpected log path: %q", cfg.LogPath)
	}

	// Env wins over the file.
	t.Setenv("BLOGTTY_API", "https://env.example.com")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Fatalf("env should override file, got %q", cfg.APIBaseURL)
	}
}

func TestUIState_LoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	st, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if st != (UIState{}) {
		t.Fatalf("expected empty state, got %+v", st)
	}

	want := UIState{FeedSource: "category", Category: "go", CommentSort: "most liked"}
	if err := SaveUIState(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != want {
		t.Fatalf("state mismatch: got %+v want %+v", got, want)
	}
}

func TestUIState_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadUIState(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
