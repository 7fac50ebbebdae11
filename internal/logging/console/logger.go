package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// Level is the severity attached to a console entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a configuration level name onto a Level. Unknown names
// report false and resolve to LevelInfo.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "", "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	}
	return LevelInfo, false
}

// Options configures the console provider. Zero values write INFO and above
// to stderr using the wall clock.
type Options struct {
	Writer io.Writer
	Clock  func() time.Time
	Level  Level
}

// Provider writes single line key=value entries. Entries from every logger
// it hands out are serialized through one mutex.
type Provider struct {
	out   io.Writer
	clock func() time.Time
	level Level
	mu    sync.Mutex
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a console provider from opts.
func NewProvider(opts Options) *Provider {
	p := &Provider{out: opts.Writer, clock: opts.Clock, level: opts.Level}
	if p.out == nil {
		p.out = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

// GetLogger returns a logger tagged with logger=name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{sink: p, fields: map[string]any{"logger": name}}
}

func (p *Provider) write(level Level, msg string, fields map[string]any) {
	if level < p.level {
		return
	}
	line := formatLine(p.clock().UTC(), level, msg, fields)

	p.mu.Lock()
	defer p.mu.Unlock()
	// Best effort: a broken log sink must not fail a build.
	_, _ = io.WriteString(p.out, line)
}

type entryLogger struct {
	sink   *Provider
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &entryLogger{sink: l.sink, fields: merged, ctx: l.ctx}
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &entryLogger{sink: l.sink, fields: l.fields, ctx: ctx}
}

func (l *entryLogger) emit(level Level, msg string, args []any) {
	if l.sink == nil {
		return
	}
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	maps.Copy(fields, logging.ContextFields(l.ctx))
	pairArgs(fields, args)
	l.sink.write(level, msg, fields)
}

// pairArgs folds alternating key/value args into fields. A non string key
// or a dangling value lands under arg_<index>.
func pairArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields[argKey(i)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = argKey(i)
		}
		fields[key] = args[i+1]
	}
}

func argKey(i int) string {
	return "arg_" + strconv.Itoa(i)
}

func formatLine(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case []string:
		return quote(strings.Join(v, ","))
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
