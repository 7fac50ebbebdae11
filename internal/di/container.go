package di

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-worklog/internal/commands"
	worklogcmd "github.com/goliatone/go-worklog/internal/commands/worklog"
	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/internal/logging/console"
	"github.com/goliatone/go-worklog/internal/logging/gologger"
	"github.com/goliatone/go-worklog/internal/manifest"
	"github.com/goliatone/go-worklog/internal/render"
	"github.com/goliatone/go-worklog/internal/runtimeconfig"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// Container wires the build pipeline, renderer and command handlers from a
// runtime configuration.
type Container struct {
	config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	clock          func() time.Time
	registry       worklogcmd.CommandRegistry

	builder  *manifest.Builder
	writer   *manifest.Writer
	document interfaces.Converter
	sections interfaces.Converter
	handlers *worklogcmd.HandlerSet
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithClock overrides the clock stamped into manifests.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithCommandRegistry registers the build handlers with reg during construction.
func WithCommandRegistry(reg worklogcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := configureLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	manifestLogger := logging.ManifestLogger(c.loggerProvider)
	c.builder = manifest.NewBuilder(
		manifest.WithClock(c.clock),
		manifest.WithLogger(manifestLogger),
		manifest.WithArticleFallbackDate(cfg.Articles.FallbackDate),
	)
	c.writer = manifest.NewWriter(
		manifest.WithWriterLogger(manifestLogger),
		manifest.WithSchemaValidation(cfg.Output.ValidateSchema),
	)

	c.document, c.sections = configureConverters(cfg.Render)
	logging.RenderLogger(c.loggerProvider).Debug("render.configured", "engine", engineName(cfg.Render))

	handlers, err := worklogcmd.RegisterWorklogCommands(
		c.registry,
		pipeline{builder: c.builder, writer: c.writer},
		c.loggerProvider,
		worklogcmd.FeatureGates{
			LogsEnabled:     func() bool { return c.config.Logs.Enabled },
			ArticlesEnabled: func() bool { return c.config.Articles.Enabled },
		},
		worklogcmd.WithLogsHandlerOptions(commands.WithTimeout[worklogcmd.BuildLogsCommand](commands.ResolveTimeout(cfg.Output.Timeout))),
		worklogcmd.WithArticlesHandlerOptions(commands.WithTimeout[worklogcmd.BuildArticlesCommand](commands.ResolveTimeout(cfg.Output.Timeout))),
	)
	if err != nil {
		return nil, fmt.Errorf("register worklog commands: %w", err)
	}
	c.handlers = handlers
	return c, nil
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config { return c.config }

// LoggerProvider returns the active logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Builder returns the manifest builder.
func (c *Container) Builder() *manifest.Builder { return c.builder }

// Writer returns the manifest writer.
func (c *Container) Writer() *manifest.Writer { return c.writer }

// DocumentConverter renders whole article bodies.
func (c *Container) DocumentConverter() interfaces.Converter { return c.document }

// SectionConverter renders the body of a single log section.
func (c *Container) SectionConverter() interfaces.Converter { return c.sections }

// Handlers returns the build command handlers.
func (c *Container) Handlers() *worklogcmd.HandlerSet { return c.handlers }

func configureLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "none":
		return nil, nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Options{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("configure go-logger: %w", err)
		}
		return provider, nil
	default:
		level, _ := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{Writer: os.Stderr, Level: level}), nil
	}
}

func configureConverters(cfg runtimeconfig.RenderConfig) (document, sections interfaces.Converter) {
	if engineName(cfg) == "goldmark" {
		engine := render.NewGoldmarkConverter(render.GoldmarkOptions{
			Extensions:     cfg.Extensions,
			HardWraps:      cfg.HardWraps,
			SafeMode:       cfg.SafeMode,
			Highlight:      cfg.Highlight,
			HighlightStyle: cfg.HighlightStyle,
		})
		return engine, engine
	}
	return render.NewLiteConverter(), render.NewLiteConverter(render.WithParagraphMode(render.ParagraphLines))
}

func engineName(cfg runtimeconfig.RenderConfig) string {
	if strings.EqualFold(strings.TrimSpace(cfg.Engine), "goldmark") {
		return "goldmark"
	}
	return "lite"
}

// pipeline joins the builder and writer behind the command contracts.
type pipeline struct {
	builder *manifest.Builder
	writer  *manifest.Writer
}

func (p pipeline) BuildLogs(ctx context.Context, root string) (*interfaces.LogManifest, error) {
	return p.builder.BuildLogs(ctx, root)
}

func (p pipeline) WriteLogs(ctx context.Context, outDir string, m *interfaces.LogManifest) (string, error) {
	return p.writer.WriteLogs(ctx, outDir, m)
}

func (p pipeline) BuildArticles(ctx context.Context, root string) (*interfaces.ArticleBuild, error) {
	return p.builder.BuildArticles(ctx, root)
}

func (p pipeline) WriteArticles(ctx context.Context, outDir string, build *interfaces.ArticleBuild) ([]string, error) {
	return p.writer.WriteArticles(ctx, outDir, build)
}
