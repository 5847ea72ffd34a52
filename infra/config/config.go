package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application-level configuration.
type Config struct {
	APIBaseURL string        `yaml:"api_base_url"` // e.g. "https://blog.example.com"
	TokenPath  string        `yaml:"token_path"`   // Bearer token file
	CacheDir   string        `yaml:"cache_dir"`    // Local interaction cache
	StatePath  string        `yaml:"state_path"`   // Persisted UI state (JSON)
	LogPath    string        `yaml:"log_path"`     // Optional slog output file
	PageSize   int           `yaml:"page_size"`    // Posts per feed page
	CacheTTL   time.Duration `yaml:"cache_ttl"`    // Liked/saved list TTL
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides.
//
//	BLOGTTY_CONFIG       Path to YAML config (default: ~/.config/blogtty/config.yaml)
//	BLOGTTY_API          Platform API base URL (required unless in the file)
//	BLOGTTY_TOKEN        Path to token file (default: ~/.config/blogtty/token)
//	BLOGTTY_CACHE        Cache directory (default: ~/.cache/blogtty)
//	BLOGTTY_STATE        Path to UI state file (default: ~/.config/blogtty/state.json)
//	BLOGTTY_LOG          Log file path (default: logging disabled)
//	BLOGTTY_PAGE_SIZE    Posts per page (default: 10)
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	confDir := filepath.Join(home, ".config", "blogtty")

	cfg := Config{
		TokenPath: filepath.Join(confDir, "token"),
		CacheDir:  filepath.Join(home, ".cache", "blogtty"),
		StatePath: filepath.Join(confDir, "state.json"),
		PageSize:  10,
	}

	path := os.Getenv("BLOGTTY_CONFIG")
	if path == "" {
		path = filepath.Join(confDir, "config.yaml")
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	base, err := normalizeBaseURL(cfg.APIBaseURL)
	if err != nil {
		return Config{}, err
	}
	cfg.APIBaseURL = base

	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BLOGTTY_API"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BLOGTTY_TOKEN"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("BLOGTTY_CACHE"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("BLOGTTY_STATE"); v != "" {
		cfg.StatePath = v
	}
	if v := os.Getenv("BLOGTTY_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("BLOGTTY_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
}

func normalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("BLOGTTY_API is required: set it to the platform API base URL")
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid BLOGTTY_API: must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", fmt.Errorf("invalid BLOGTTY_API: only http(s) is allowed")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// UIState is the slice of view state persisted between sessions.
type UIState struct {
	FeedSource  string `json:"feed_source"` // latest | category | tag | search | saved
	Category    string `json:"category"`
	Tag         string `json:"tag"`
	Query       string `json:"query"`
	CommentSort string `json:"comment_sort"` // newest | oldest | most liked
}

// LoadUIState reads persisted UI state. A missing file is an empty state,
// not an error; a corrupt file is an error.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return UIState{}, nil
		}
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}

	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state %s: %w", path, err)
	}
	return st, nil
}

// SaveUIState writes the UI state, creating parent directories as needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
