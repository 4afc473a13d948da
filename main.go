package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/infra/config"
	"github.com/CrestNiraj12/lemmyterm/infra/lemmy"
	"github.com/CrestNiraj12/lemmyterm/infra/logging"
	"github.com/CrestNiraj12/lemmyterm/infra/pager"
	"github.com/CrestNiraj12/lemmyterm/tui"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
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

// parseCLIArgs returns the mode and, for cliRun, the optional startup
// community; for cliInvalid, the error message.
func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	}
	if len(args) == 1 && !strings.HasPrefix(args[0], "-") {
		return cliRun, strings.TrimSpace(args[0])
	}
	return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
}

func usage() string {
	return "Usage: lemmyterm [community] [--version|-version|-v] [--help|-h]"
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

func navOptions(cfg config.Config) nav.Options {
	return nav.Options{
		PostLimit:       cfg.PostLimit,
		CommunityLimit:  cfg.CommunityLimit,
		CommentMaxDepth: cfg.CommentMaxDepth,
		PostSort:        domain.SortType(cfg.PostSort),
		CommentSort:     domain.SortType(cfg.CommentSort),
		CommunitySort:   domain.SortType(cfg.CommunitySort),
	}
}

func newClient(cfg config.Config, log *zap.Logger) *lemmy.Client {
	opts := []lemmy.Option{lemmy.WithLogger(log)}
	if cfg.Breaker.Enabled {
		cb := lemmy.NewBreaker("lemmy-api", lemmy.BreakerSettings{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}, log)
		opts = append(opts, lemmy.WithCircuitBreaker(cb))
	}
	return lemmy.NewClient(cfg.InstanceURL, cfg.Timeout, opts...)
}

func main() {
	mode, arg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("lemmyterm %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", arg, usage())
		os.Exit(2)
	}

	// 1. Load config from .env, config file and environment.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting", zap.String("instance", cfg.InstanceURL), zap.String("community", arg))

	// 2. Build infrastructure and services.
	forum := lemmy.NewForumService(newClient(cfg, log))

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Forum:     forum,
		Pager:     pager.NewEnvPager(),
		Options:   navOptions(cfg),
		Logger:    log,
		Community: arg,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "lemmyterm: %v\n", err)
		os.Exit(1)
	}
}
