package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Dir string
}

func (testMessage) Type() string { return "worklog.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "worklog.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("disk full")
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerNotifiesObservers(t *testing.T) {
	var runs []Execution
	observer := func(_ context.Context, msg testMessage, run Execution) {
		runs = append(runs, run)
	}

	fail := true
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if fail {
			return errors.New("broken tree")
		}
		return nil
	},
		WithOperation[testMessage]("worklog.test"),
		WithMessageFields[testMessage](func(msg testMessage) map[string]any { return map[string]any{"dir": msg.Dir} }),
		WithObserver[testMessage](observer),
	)

	_ = h.Execute(context.Background(), testMessage{Dir: "log_data"})
	fail = false
	_ = h.Execute(context.Background(), testMessage{Dir: "log_data"})

	if len(runs) != 2 {
		t.Fatalf("expected 2 observed runs, got %d", len(runs))
	}
	if runs[0].Outcome != OutcomeFailed || runs[0].Err == nil {
		t.Fatalf("unexpected first run %+v", runs[0])
	}
	if runs[1].Outcome != OutcomeSuccess || runs[1].Command != "worklog.test.message" || runs[1].Operation != "worklog.test" {
		t.Fatalf("unexpected second run %+v", runs[1])
	}
}

func TestHandlerObserverSeesContextErrors(t *testing.T) {
	var outcome Outcome
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return context.DeadlineExceeded
	}, WithObserver[testMessage](func(_ context.Context, _ testMessage, run Execution) { outcome = run.Outcome }))

	_ = h.Execute(context.Background(), testMessage{})
	if outcome != OutcomeContextError {
		t.Fatalf("expected context error outcome, got %q", outcome)
	}
}

func TestResolveTimeout(t *testing.T) {
	if got := ResolveTimeout(0); got != DefaultCommandTimeout {
		t.Fatalf("expected default timeout, got %v", got)
	}
	if got := ResolveTimeout(-time.Second); got != DefaultCommandTimeout {
		t.Fatalf("expected default timeout for negative values, got %v", got)
	}
	if got := ResolveTimeout(5 * time.Second); got != 5*time.Second {
		t.Fatalf("expected configured timeout, got %v", got)
	}
}
