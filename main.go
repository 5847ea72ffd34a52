package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"blogtty/infra/auth"
	"blogtty/infra/blogapi"
	"blogtty/infra/cache"
	"blogtty/infra/config"
	"blogtty/infra/editor"
	"blogtty/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: blogtty [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// newLogger writes structured logs to the configured file, or discards
// everything. Logging to stderr would corrupt the TUI.
func newLogger(path string) (*slog.Logger, func()) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { _ = f.Close() }
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("blogtty %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config from file and environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.LogPath)
	defer closeLog()

	// 2. Build infrastructure.
	tokenProvider := auth.NewFileTokenProvider(cfg.TokenPath)
	tokenStore := auth.NewStore(cfg.TokenPath)
	client := blogapi.NewClient(cfg.APIBaseURL, tokenProvider, logger)

	interactionCache, err := cache.Open(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		logger.Warn("disk cache unavailable, falling back to memory", "error", err)
		interactionCache, err = cache.OpenInMemory(cfg.CacheTTL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache: %v\n", err)
			os.Exit(1)
		}
	}
	defer interactionCache.Close()

	// 3. Build services (concrete types satisfy app.* interfaces).
	postSvc := blogapi.NewPostService(client, cfg.PageSize)
	taxonomySvc := blogapi.NewTaxonomyService(client)
	commentSvc := blogapi.NewCommentService(client)
	interactionSvc := blogapi.NewInteractionService(client)
	authSvc := blogapi.NewAuthService(client, tokenStore)
	adminSvc := blogapi.NewAdminService(client)
	editorSvc := editor.NewEnvEditor()

	uiState, _ := config.LoadUIState(cfg.StatePath)

	// 4. Wire the root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:        postSvc,
		Taxonomy:     taxonomySvc,
		Comments:     commentSvc,
		Interactions: interactionSvc,
		Auth:         authSvc,
		Admin:        adminSvc,
		Editor:       editorSvc,
		Cache:        interactionCache,
		StatePath:    cfg.StatePath,
		State:        uiState,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "blogtty: %v\n", err)
		os.Exit(1)
	}
}
