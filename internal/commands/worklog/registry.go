package worklogcmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-worklog/internal/commands"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// ErrRebuildScheduleRequired reports a rebuild registration without a cron expression.
var ErrRebuildScheduleRequired = errors.New("worklog command registration: rebuild schedule is empty")

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterWorklogCommands.
type HandlerSet struct {
	Logs     *BuildLogsHandler
	Articles *BuildArticlesHandler
}

// Pipeline serves both build commands.
type Pipeline interface {
	LogPipeline
	ArticlePipeline
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	logsOpts     []commands.HandlerOption[BuildLogsCommand]
	articlesOpts []commands.HandlerOption[BuildArticlesCommand]
}

// WithLogsHandlerOptions forwards options to the BuildLogsHandler constructor.
func WithLogsHandlerOptions(opts ...commands.HandlerOption[BuildLogsCommand]) Option {
	return func(cfg *options) {
		cfg.logsOpts = append(cfg.logsOpts, opts...)
	}
}

// WithArticlesHandlerOptions forwards options to the BuildArticlesHandler constructor.
func WithArticlesHandlerOptions(opts ...commands.HandlerOption[BuildArticlesCommand]) Option {
	return func(cfg *options) {
		cfg.articlesOpts = append(cfg.articlesOpts, opts...)
	}
}

// RegisterWorklogCommands builds both handlers and registers them with reg
// when it is non-nil.
func RegisterWorklogCommands(reg CommandRegistry, pipeline Pipeline, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if pipeline == nil {
		return nil, errors.New("worklog command registration: pipeline is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "build")
	set := &HandlerSet{
		Logs:     NewBuildLogsHandler(pipeline, logger, gates, cfg.logsOpts...),
		Articles: NewBuildArticlesHandler(pipeline, logger, gates, cfg.articlesOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Logs); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Articles); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// RebuildJob runs one scheduled rebuild.
type RebuildJob func(ctx context.Context) error

// RegisterRebuildCron schedules job through reg using cfg.Expression.
func RegisterRebuildCron(reg CronRegistrar, cfg command.HandlerConfig, job RebuildJob) error {
	if reg == nil || job == nil {
		return nil
	}
	if strings.TrimSpace(cfg.Expression) == "" {
		return ErrRebuildScheduleRequired
	}
	return reg(cfg, func() error {
		return job(context.Background())
	})
}
