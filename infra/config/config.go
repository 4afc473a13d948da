package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// Config holds application-level configuration.
type Config struct {
	InstanceURL     string        `mapstructure:"instance"` // e.g. "https://lemmy.ml"
	PostLimit       int           `mapstructure:"post_limit"`
	CommunityLimit  int           `mapstructure:"community_limit"`
	CommentMaxDepth int           `mapstructure:"comment_max_depth"`
	PostSort        string        `mapstructure:"post_sort"`
	CommentSort     string        `mapstructure:"comment_sort"`
	CommunitySort   string        `mapstructure:"community_sort"`
	Timeout         time.Duration `mapstructure:"timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`
	Breaker         BreakerConfig `mapstructure:"breaker"`
	Port            int           `mapstructure:"port"` // local CGI port used by rewritelinks
}

// BreakerConfig holds circuit breaker settings for API calls.
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

const envPrefix = "LEMMYTERM"

// Load reads configuration from defaults, an optional config.yaml and the
// environment, in increasing order of precedence.
//
//	LEMMYTERM_INSTANCE           Lemmy instance URL (default: https://lemmy.ml)
//	LEMMYTERM_POST_LIMIT         posts per page (default: 25)
//	LEMMYTERM_COMMUNITY_LIMIT    communities per page (default: 50)
//	LEMMYTERM_COMMENT_MAX_DEPTH  comment tree depth (default: 8)
//	LEMMYTERM_TIMEOUT            HTTP timeout (default: 30s)
//	LEMMYTERM_LOG_FILE           JSON log destination (default: none)
//	PORT                         port for rewritelinks (default: 8080)
//
// The config file is looked up in $XDG_CONFIG_HOME/lemmyterm, then the
// working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadPort reads only PORT (default 8080), for tools that share the local
// CGI port but none of the client settings.
func LoadPort() (int, error) {
	v := viper.New()
	v.SetDefault("port", 8080)
	_ = v.BindEnv("port", "PORT")
	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT: %q", v.GetString("port"))
	}
	return port, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("instance", "https://lemmy.ml")
	v.SetDefault("post_limit", 25)
	v.SetDefault("community_limit", 50)
	v.SetDefault("comment_max_depth", 8)
	v.SetDefault("post_sort", string(domain.SortHot))
	v.SetDefault("comment_sort", string(domain.SortHot))
	v.SetDefault("community_sort", string(domain.SortHot))
	v.SetDefault("timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("port", 8080)
}

func configDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "lemmyterm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lemmyterm"), nil
}

func (c *Config) normalize() error {
	parsed, err := url.Parse(strings.TrimSpace(c.InstanceURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid %s_INSTANCE: must be an absolute URL", envPrefix)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("invalid %s_INSTANCE: only https is allowed", envPrefix)
	}
	c.InstanceURL = strings.TrimRight(parsed.String(), "/")

	if c.PostLimit <= 0 || c.CommunityLimit <= 0 || c.CommentMaxDepth <= 0 {
		return fmt.Errorf("invalid limits: post=%d community=%d depth=%d", c.PostLimit, c.CommunityLimit, c.CommentMaxDepth)
	}
	if err := domain.ValidateSort(domain.SortType(c.PostSort), domain.PostSorts); err != nil {
		return fmt.Errorf("post_sort: %w", err)
	}
	if err := domain.ValidateSort(domain.SortType(c.CommunitySort), domain.PostSorts); err != nil {
		return fmt.Errorf("community_sort: %w", err)
	}
	if err := domain.ValidateSort(domain.SortType(c.CommentSort), domain.CommentSorts); err != nil {
		return fmt.Errorf("comment_sort: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	return nil
}
