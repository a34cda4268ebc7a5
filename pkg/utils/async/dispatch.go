package async

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
)

var inflight sync.WaitGroup

// Dispatch runs handler in a new goroutine detached from ctx cancellation.
// The request logger is carried over; errors and panics are logged, never returned.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	logger := logging.From(ctx).With(slog.String("task", name))
	bgCtx := logging.With(context.WithoutCancel(ctx), logger)

	inflight.Add(1)
	go func() {
		defer inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async task", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logger.Warn("async task failed", "error", err)
		}
	}()
}

// Wait blocks until every dispatched task has finished or ctx is done.
// Call it before the process exits so pending tasks are not dropped.
func Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "async tasks still running")
	}
}
