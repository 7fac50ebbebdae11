package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// Options selects the go-logger backend settings.
type Options struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

func formatOption(format string) (glog.Option, bool) {
	switch format {
	case "json":
		return glog.WithLoggerTypeJSON(), true
	case "console":
		return glog.WithLoggerTypeConsole(), true
	case "pretty":
		return glog.WithLoggerTypePretty(), true
	}
	return nil, false
}

// Provider hands out go-logger child loggers named after worklog modules.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider configures a go-logger root. An empty format selects JSON.
func NewProvider(opts Options) (*Provider, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "json"
	}
	typeOption, ok := formatOption(format)
	if !ok {
		return nil, fmt.Errorf("gologger: unsupported format %q", opts.Format)
	}

	options := []glog.Option{typeOption}
	if name := strings.ToLower(strings.TrimSpace(opts.Level)); name != "" {
		level, ok := levels[name]
		if !ok {
			return nil, fmt.Errorf("gologger: unsupported level %q", opts.Level)
		}
		options = append(options, glog.WithLevel(level))
	}
	if opts.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := compact(opts.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the child logger for name, or the root for a blank name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

// adapter bridges glog.Logger onto the worklog contract. Backends without
// native field support get their fields appended as trailing key/value args.
type adapter struct {
	inner glog.Logger
	extra []any
}

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, a.args(args)...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, a.args(args)...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, a.args(args)...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, a.args(args)...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, a.args(args)...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, a.args(args)...) }

func (a *adapter) args(args []any) []any {
	if len(a.extra) == 0 {
		return args
	}
	return append(slices.Clone(args), a.extra...)
}

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	if native, ok := a.inner.(glog.FieldsLogger); ok {
		return &adapter{inner: native.WithFields(maps.Clone(fields)), extra: a.extra}
	}
	extra := slices.Clone(a.extra)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		extra = append(extra, key, fields[key])
	}
	return &adapter{inner: a.inner, extra: extra}
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	next := a
	if tagged, ok := a.WithFields(logging.ContextFields(ctx)).(*adapter); ok {
		next = tagged
	}
	return &adapter{inner: next.inner.WithContext(ctx), extra: next.extra}
}

func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
