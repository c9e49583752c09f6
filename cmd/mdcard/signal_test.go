package main

// Notes:
// - notifyContext: we only test the observable behavior (context creation,
//   cancellation via stop(), and parent context propagation). We do not test
//   actual OS signal delivery since it's non-deterministic and requires
//   platform-specific setup.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Context creation and cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("starts not canceled", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		defer stop()

		select {
		case <-ctx.Done():
			t.Fatal("context should not be canceled initially")
		default:
		}
	})

	t.Run("stop cancels context", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		stop()

		select {
		case <-ctx.Done():
		default:
			t.Fatal("context should be canceled after stop()")
		}
	})

	t.Run("inherits parent cancellation", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()

		<-ctx.Done()
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("ctx.Err() = %v, want context.Canceled", ctx.Err())
		}
	})

	t.Run("canceled context stops text conversion", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		stop()

		te := newTestEnv(newMockConverter(), "# 标题")
		if code := runMain(ctx, []string{"mdcard", "text"}, te.Environment); code != ExitGeneral {
			t.Errorf("runMain() = %d, want %d after cancellation", code, ExitGeneral)
		}
	})
}
