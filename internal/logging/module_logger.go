package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-worklog/pkg/interfaces"
)

const (
	rootModule     = "worklog"
	manifestModule = "worklog.manifest"
	renderModule   = "worklog.render"
)

const (
	fieldSourcePath = "source_path"
	fieldPipeline   = "pipeline"
	fieldBuildID    = "build_id"
)

// ModuleLogger returns the logger registered for module, tagged with a
// module field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ManifestLogger returns the logger used by the manifest builder and writer.
func ManifestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, manifestModule)
}

// RenderLogger returns the logger used by render tooling.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// WithBuildContext tags logger with the pipeline name (logs, articles), the
// build identifier and, when set, the source file being processed.
func WithBuildContext(logger interfaces.Logger, pipeline, buildID, path string) interfaces.Logger {
	return WithFields(logger, buildFields(pipeline, buildID, path))
}

// ContextWithBuild stores the pipeline name and build identifier on ctx so
// loggers bound to ctx tag every entry of the run.
func ContextWithBuild(ctx context.Context, pipeline, buildID string) context.Context {
	return ContextWithFields(ctx, buildFields(pipeline, buildID, ""))
}

func buildFields(pipeline, buildID, path string) map[string]any {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pipeline); trimmed != "" {
		fields[fieldPipeline] = trimmed
	}
	if trimmed := strings.TrimSpace(buildID); trimmed != "" {
		fields[fieldBuildID] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	return fields
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
