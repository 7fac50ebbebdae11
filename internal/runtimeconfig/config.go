package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-worklog/internal/markdown"
)

var ErrNoPipelineEnabled = errors.New("worklog config: at least one of logs or articles must be enabled")
var ErrLogsDirRequired = errors.New("worklog config: logs directory is required when logs are enabled")
var ErrArticlesDirRequired = errors.New("worklog config: articles directory is required when articles are enabled")
var ErrOutputDirRequired = errors.New("worklog config: output directory is required")
var ErrFallbackDateInvalid = errors.New("worklog config: article fallback date must use YYYY-MM-DD")
var ErrRenderEngineUnknown = errors.New("worklog config: render engine is invalid")
var ErrTimeoutInvalid = errors.New("worklog config: build timeout must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("worklog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("worklog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("worklog config: logging format is invalid")

// EnvPrefix prefixes every environment override, e.g. WORKLOG_LOGS_DIR.
const EnvPrefix = "WORKLOG_"

// Config aggregates the settings for both build pipelines, the renderer and
// runtime logging.
type Config struct {
	Logs     SourceConfig  `yaml:"logs"`
	Articles ArticleConfig `yaml:"articles"`
	Output   OutputConfig  `yaml:"output"`
	Render   RenderConfig  `yaml:"render"`
	Logging  LoggingConfig `yaml:"logging"`
}

// SourceConfig points a pipeline at its content root.
type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// ArticleConfig extends SourceConfig with the date used when an article has
// no front-matter date.
type ArticleConfig struct {
	SourceConfig `yaml:",inline"`
	FallbackDate string `yaml:"fallback_date"`
}

// OutputConfig controls where and how manifests are written.
type OutputConfig struct {
	Dir            string        `yaml:"dir"`
	ValidateSchema bool          `yaml:"validate_schema"`
	Timeout        time.Duration `yaml:"timeout"`
	// RebuildSchedule is a cron expression such as "@every 10m" used when
	// the host schedules periodic rebuilds. Empty disables scheduling.
	RebuildSchedule string `yaml:"rebuild_schedule"`
}

// RenderConfig selects the markdown engine used by preview tooling.
type RenderConfig struct {
	Engine     string   `yaml:"engine"`
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
	// Highlight colors fenced code in the goldmark engine.
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlight_style"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig mirrors the directory layout of the published site.
func DefaultConfig() Config {
	return Config{
		Logs: SourceConfig{
			Enabled: true,
			Dir:     "log_data",
		},
		Articles: ArticleConfig{
			SourceConfig: SourceConfig{
				Enabled: true,
				Dir:     "article_data",
			},
			FallbackDate: markdown.ArticleFallbackDate,
		},
		Output: OutputConfig{
			Dir:            "public/data",
			ValidateSchema: true,
		},
		Render: RenderConfig{
			Engine: "lite",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if !cfg.Logs.Enabled && !cfg.Articles.Enabled {
		return ErrNoPipelineEnabled
	}
	if cfg.Logs.Enabled && strings.TrimSpace(cfg.Logs.Dir) == "" {
		return ErrLogsDirRequired
	}
	if cfg.Articles.Enabled {
		if strings.TrimSpace(cfg.Articles.Dir) == "" {
			return ErrArticlesDirRequired
		}
		if _, err := time.Parse(markdown.DateLayout, cfg.Articles.FallbackDate); err != nil {
			return fmt.Errorf("%w: %q", ErrFallbackDateInvalid, cfg.Articles.FallbackDate)
		}
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Output.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	switch normalize(cfg.Render.Engine) {
	case "", "lite", "goldmark":
	default:
		return fmt.Errorf("%w: %s", ErrRenderEngineUnknown, cfg.Render.Engine)
	}

	provider := normalize(cfg.Logging.Provider)
	switch provider {
	case "", "console", "gologger", "none":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
	}
	if provider == "gologger" {
		if format := normalize(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
		}
	}
	return nil
}

// Load reads the optional YAML file at path over DefaultConfig, applies
// WORKLOG_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("worklog config: read %s: %w", path, err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("worklog config: decode %s: %w", path, err)
		}
	}
	if lookup != nil {
		if err := applyEnv(&cfg, lookup); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOGS_DIR":                &cfg.Logs.Dir,
		"ARTICLES_DIR":            &cfg.Articles.Dir,
		"ARTICLES_FALLBACK_DATE":  &cfg.Articles.FallbackDate,
		"OUTPUT_DIR":              &cfg.Output.Dir,
		"OUTPUT_REBUILD_SCHEDULE": &cfg.Output.RebuildSchedule,
		"RENDER_ENGINE":           &cfg.Render.Engine,
		"LOG_PROVIDER":            &cfg.Logging.Provider,
		"LOG_LEVEL":               &cfg.Logging.Level,
		"LOG_FORMAT":              &cfg.Logging.Format,
	}
	for key, target := range strs {
		if value, ok := lookup(EnvPrefix + key); ok {
			*target = strings.TrimSpace(value)
		}
	}

	bools := map[string]*bool{
		"LOGS_ENABLED":           &cfg.Logs.Enabled,
		"ARTICLES_ENABLED":       &cfg.Articles.Enabled,
		"OUTPUT_VALIDATE_SCHEMA": &cfg.Output.ValidateSchema,
	}
	for key, target := range bools {
		value, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("worklog config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = parsed
	}

	if value, ok := lookup(EnvPrefix + "OUTPUT_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("worklog config: %sOUTPUT_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Output.Timeout = timeout
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
