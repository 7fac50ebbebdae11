package worklogcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-worklog/internal/commands"
	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

const (
	buildLogsOperation     = "worklog.build_logs"
	buildArticlesOperation = "worklog.build_articles"
)

var (
	ErrLogsDisabled     = errors.New("worklog command: logs pipeline disabled")
	ErrArticlesDisabled = errors.New("worklog command: articles pipeline disabled")
)

// LogPipeline builds and writes the work log manifest.
type LogPipeline interface {
	BuildLogs(ctx context.Context, root string) (*interfaces.LogManifest, error)
	WriteLogs(ctx context.Context, outDir string, m *interfaces.LogManifest) (string, error)
}

// ArticlePipeline builds and writes the article documents.
type ArticlePipeline interface {
	BuildArticles(ctx context.Context, root string) (*interfaces.ArticleBuild, error)
	WriteArticles(ctx context.Context, outDir string, build *interfaces.ArticleBuild) ([]string, error)
}

var (
	_ command.Commander[BuildLogsCommand]     = (*BuildLogsHandler)(nil)
	_ command.Commander[BuildArticlesCommand] = (*BuildArticlesHandler)(nil)
)

// BuildLogsHandler runs the log pipeline for BuildLogsCommand.
type BuildLogsHandler struct {
	inner *commands.Handler[BuildLogsCommand]
}

// NewBuildLogsHandler binds a handler to pipeline.
func NewBuildLogsHandler(pipeline LogPipeline, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildLogsCommand]) *BuildLogsHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg BuildLogsCommand) error {
		if !gates.logsEnabled() {
			return ErrLogsDisabled
		}
		m, err := pipeline.BuildLogs(ctx, msg.SourceDir)
		if err != nil {
			return err
		}
		fields := map[string]any{
			"count":        len(m.Logs),
			"last_updated": m.LastUpdated,
			"dry_run":      msg.DryRun,
		}
		if !msg.DryRun {
			path, err := pipeline.WriteLogs(ctx, msg.OutputDir, m)
			if err != nil {
				return err
			}
			fields["output"] = path
		}
		logging.WithFields(baseLogger, fields).Info("worklog.command.build_logs.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildLogsCommand]{
		commands.WithLogger[BuildLogsCommand](baseLogger),
		commands.WithOperation[BuildLogsCommand](buildLogsOperation),
		commands.WithMessageFields[BuildLogsCommand](func(msg BuildLogsCommand) map[string]any {
			return directoryFields(msg.SourceDir, msg.OutputDir, msg.DryRun)
		}),
	}
	return &BuildLogsHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[BuildLogsCommand].
func (h *BuildLogsHandler) Execute(ctx context.Context, msg BuildLogsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildArticlesHandler runs the article pipeline for BuildArticlesCommand.
type BuildArticlesHandler struct {
	inner *commands.Handler[BuildArticlesCommand]
}

// NewBuildArticlesHandler binds a handler to pipeline.
func NewBuildArticlesHandler(pipeline ArticlePipeline, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildArticlesCommand]) *BuildArticlesHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg BuildArticlesCommand) error {
		if !gates.articlesEnabled() {
			return ErrArticlesDisabled
		}
		build, err := pipeline.BuildArticles(ctx, msg.SourceDir)
		if err != nil {
			return err
		}
		fields := map[string]any{
			"count":        len(build.Manifest.Articles),
			"last_updated": build.Manifest.LastUpdated,
			"dry_run":      msg.DryRun,
		}
		if !msg.DryRun {
			written, err := pipeline.WriteArticles(ctx, msg.OutputDir, build)
			if err != nil {
				return err
			}
			fields["files_written"] = len(written)
		}
		logging.WithFields(baseLogger, fields).Info("worklog.command.build_articles.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildArticlesCommand]{
		commands.WithLogger[BuildArticlesCommand](baseLogger),
		commands.WithOperation[BuildArticlesCommand](buildArticlesOperation),
		commands.WithMessageFields[BuildArticlesCommand](func(msg BuildArticlesCommand) map[string]any {
			return directoryFields(msg.SourceDir, msg.OutputDir, msg.DryRun)
		}),
	}
	return &BuildArticlesHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[BuildArticlesCommand].
func (h *BuildArticlesHandler) Execute(ctx context.Context, msg BuildArticlesCommand) error {
	return h.inner.Execute(ctx, msg)
}

func directoryFields(source, output string, dryRun bool) map[string]any {
	fields := map[string]any{
		"source_dir": source,
		"output_dir": output,
	}
	if dryRun {
		fields["dry_run"] = true
	}
	return fields
}
