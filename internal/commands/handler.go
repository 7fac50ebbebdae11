package commands

import (
	"context"
	"errors"
	"maps"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-worklog/internal/logging"
	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// MessageFields extracts log fields from a message.
type MessageFields[T command.Message] func(msg T) map[string]any

// Outcome reports how an execution ended.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeFailed       Outcome = "failed"
	OutcomeContextError Outcome = "context_error"
)

// Execution describes a finished command run handed to an Observer.
type Execution struct {
	Command   string
	Operation string
	Duration  time.Duration
	Outcome   Outcome
	Err       error
}

// Observer is notified after every execution that passed validation.
type Observer[T command.Message] func(ctx context.Context, msg T, run Execution)

// Handler wraps a build command with the concerns every worklog command
// shares: validation, a deadline, structured logging and error categories.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    MessageFields[T]
	observers []Observer[T]
}

// NewHandler creates a handler that satisfies command.Commander[T].
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates msg, applies the timeout and runs the wrapped function.
// Returned errors carry a go-errors category and text code.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	ctx, cancel := buildContext(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	run := Execution{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
	}
	fields := map[string]any{"command": run.Command}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	logger := logging.WithFields(h.logger, fields).WithContext(ctx)
	logger.Debug("command.execute.start")

	started := time.Now()
	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	run.Duration = time.Since(started)

	switch {
	case err == nil:
		run.Outcome = OutcomeSuccess
		logger.Info("command.execute.success", "duration_ms", run.Duration.Milliseconds())
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		run.Outcome = OutcomeContextError
		run.Err = err
		logger.Error("command.execute.context_error", "error", err, "error_code", FailureCode(err))
		err = wrapContextError(err)
	default:
		run.Outcome = OutcomeFailed
		run.Err = err
		logger.Error("command.execute.failed", "error", err, "error_code", FailureCode(err))
		err = wrapExecuteError(err)
	}

	for _, observe := range h.observers {
		observe(ctx, msg, run)
	}
	return err
}

// WithTimeout overrides the default execution timeout. Zero or negative
// disables the deadline.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = logging.Ensure(logger)
	}
}

// WithOperation sets the operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields adds per-message fields to every log entry.
func WithMessageFields[T command.Message](fn MessageFields[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithObserver registers a callback run after each execution.
func WithObserver[T command.Message](observer Observer[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		if observer != nil {
			h.observers = append(h.observers, observer)
		}
	}
}
