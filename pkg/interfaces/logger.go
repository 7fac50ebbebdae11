package interfaces

import "context"

// Logger receives build and render events such as manifest.build.start or
// command.execute.failed, followed by alternating key/value pairs. Context
// bound loggers pick up the pipeline and build_id a build stores on ctx.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider resolves loggers by dotted module name: worklog,
// worklog.manifest, worklog.render and worklog.commands.<family>.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can pin fields, like the
// pipeline name, onto every later entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
