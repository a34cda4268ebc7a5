package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/smartcomment/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("handler outlives caller cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		async.Dispatch(ctx, "test", func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			done <- ctx.Err()
			return nil
		})
		cancel()

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("error and panic do not escape", func(t *testing.T) {
		done := make(chan struct{}, 2)

		async.Dispatch(context.Background(), "fails", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			return errors.New("boom")
		})
		async.Dispatch(context.Background(), "panics", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			panic("boom")
		})

		for range 2 {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("handler did not run")
			}
		}
	})
}

func TestWait(t *testing.T) {
	t.Run("returns after pending tasks finish", func(t *testing.T) {
		var finished atomic.Bool
		async.Dispatch(context.Background(), "slow", func(ctx context.Context) error {
			time.Sleep(30 * time.Millisecond)
			finished.Store(true)
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		gt.NoError(t, async.Wait(ctx))
		gt.B(t, finished.Load()).True()
	})

	t.Run("gives up when context is done", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		async.Dispatch(context.Background(), "blocked", func(ctx context.Context) error {
			<-release
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := async.Wait(ctx)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, context.DeadlineExceeded)).True()
	})
}
