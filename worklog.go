package worklog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"

	worklogcmd "github.com/goliatone/go-worklog/internal/commands/worklog"
	"github.com/goliatone/go-worklog/internal/di"
	"github.com/goliatone/go-worklog/internal/render"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

type (
	LogEntry        = interfaces.LogEntry
	LogManifest     = interfaces.LogManifest
	ArticleEntry    = interfaces.ArticleEntry
	ArticleManifest = interfaces.ArticleManifest
	ArticleContent  = interfaces.ArticleContent
	ArticleBuild    = interfaces.ArticleBuild
	LogSection      = interfaces.LogSection
	MonthGroup      = interfaces.MonthGroup

	BuildLogsCommand     = worklogcmd.BuildLogsCommand
	BuildArticlesCommand = worklogcmd.BuildArticlesCommand
	CronRegistrar        = worklogcmd.CronRegistrar
)

// Pipeline names accepted by BuildOptions.Only.
const (
	PipelineLogs     = "logs"
	PipelineArticles = "articles"
)

var (
	ErrUnknownPipeline         = errors.New("worklog: unknown pipeline")
	ErrRebuildScheduleRequired = worklogcmd.ErrRebuildScheduleRequired
)

// Module is the top level worklog runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a Module from cfg and optional container overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// BuildOptions narrows a Build run.
type BuildOptions struct {
	// Only restricts the run to one pipeline. Empty runs every enabled one.
	Only string
	// DryRun builds without writing.
	DryRun bool
}

// Build runs the enabled pipelines against the configured directories. The
// first failure stops the run.
func (m *Module) Build(ctx context.Context, opts BuildOptions) error {
	cfg := m.container.Config()
	handlers := m.container.Handlers()

	runLogs, runArticles := cfg.Logs.Enabled, cfg.Articles.Enabled
	switch opts.Only {
	case "":
	case PipelineLogs:
		runArticles = false
	case PipelineArticles:
		runLogs = false
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPipeline, opts.Only)
	}

	if runLogs {
		msg := BuildLogsCommand{SourceDir: cfg.Logs.Dir, OutputDir: cfg.Output.Dir, DryRun: opts.DryRun}
		if err := handlers.Logs.Execute(ctx, msg); err != nil {
			return err
		}
	}
	if runArticles {
		msg := BuildArticlesCommand{SourceDir: cfg.Articles.Dir, OutputDir: cfg.Output.Dir, DryRun: opts.DryRun}
		if err := handlers.Articles.Execute(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// BuildLogs returns the log manifest for root without writing it.
func (m *Module) BuildLogs(ctx context.Context, root string) (*LogManifest, error) {
	return m.container.Builder().BuildLogs(ctx, root)
}

// BuildArticles returns the article documents for root without writing them.
func (m *Module) BuildArticles(ctx context.Context, root string) (*ArticleBuild, error) {
	return m.container.Builder().BuildArticles(ctx, root)
}

// RenderSections splits a log body into rendered sections.
func (m *Module) RenderSections(body string) ([]LogSection, error) {
	return render.SplitSections(body, m.container.SectionConverter())
}

// RenderDocument renders a whole article body.
func (m *Module) RenderDocument(body string) (string, error) {
	return m.container.DocumentConverter().Convert(body)
}

// Archive groups logs by calendar month.
func (m *Module) Archive(logs []LogEntry) []MonthGroup {
	return render.GroupByMonth(logs)
}

// Subscribe registers the build handlers with the go-command dispatcher so
// BuildLogsCommand and BuildArticlesCommand can be sent with
// dispatcher.Dispatch. The returned func removes both subscriptions.
func (m *Module) Subscribe() func() {
	handlers := m.container.Handlers()
	logs := dispatcher.SubscribeCommand(handlers.Logs)
	articles := dispatcher.SubscribeCommand(handlers.Articles)
	return func() {
		logs.Unsubscribe()
		articles.Unsubscribe()
	}
}

// ScheduleRebuild registers a full Build of every enabled pipeline with reg,
// firing on Output.RebuildSchedule.
func (m *Module) ScheduleRebuild(reg CronRegistrar) error {
	cfg := command.HandlerConfig{Expression: strings.TrimSpace(m.container.Config().Output.RebuildSchedule)}
	return worklogcmd.RegisterRebuildCron(reg, cfg, func(ctx context.Context) error {
		return m.Build(ctx, BuildOptions{})
	})
}
