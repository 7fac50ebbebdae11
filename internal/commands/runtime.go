package commands

import (
	"context"
	"time"
)

// DefaultCommandTimeout bounds one build run when output.timeout is unset.
const DefaultCommandTimeout = 2 * time.Minute

// ResolveTimeout returns configured when positive, else DefaultCommandTimeout.
func ResolveTimeout(configured time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return DefaultCommandTimeout
}

// buildContext derives the context a build runs under. A nil ctx counts as
// background and a non-positive timeout leaves the run without a deadline.
func buildContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
