package main

import (
	"os"
	"testing"
	"time"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	t.Run("Now returns real time", func(t *testing.T) {
		before := time.Now()
		got := env.Now()
		after := time.Now()

		if got.Before(before) || got.After(after) {
			t.Errorf("Now() = %v, should be between %v and %v", got, before, after)
		}
	})

	t.Run("standard streams", func(t *testing.T) {
		if env.Stdout != os.Stdout || env.Stderr != os.Stderr || env.Stdin != os.Stdin {
			t.Error("DefaultEnv should use the process standard streams")
		}
	})

	t.Run("injectable functions set", func(t *testing.T) {
		if env.StdinIsTTY == nil || env.Clipboard == nil || env.NewPool == nil {
			t.Error("StdinIsTTY, Clipboard and NewPool should not be nil")
		}
	})

	t.Run("NewPool builds a library pool", func(t *testing.T) {
		pool := env.NewPool(2)
		defer pool.Close()

		if _, ok := pool.(*poolAdapter); !ok {
			t.Errorf("NewPool() = %T, want *poolAdapter", pool)
		}
		if pool.Size() != 2 {
			t.Errorf("Size() = %d, want 2", pool.Size())
		}
	})
}
