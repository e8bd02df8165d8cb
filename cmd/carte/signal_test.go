package main

// Notes:
// - Delivering a real signal would affect the whole test binary, so only
//   parent cancellation and stop are tested here.

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := notifyContext(parent)
	defer stop()

	if ctx.Err() != nil {
		t.Fatalf("context done before any signal: %v", ctx.Err())
	}
	cancel()
	<-ctx.Done()
	if ctx.Err() != context.Canceled {
		t.Errorf("ctx.Err() = %v, want context.Canceled", ctx.Err())
	}
}

func TestNotifyContext_Stop(t *testing.T) {
	t.Parallel()

	ctx, stop := notifyContext(context.Background())
	stop()
	<-ctx.Done()
}

func TestShutdownSignals(t *testing.T) {
	t.Parallel()

	if len(shutdownSignals) == 0 {
		t.Fatal("no shutdown signals registered")
	}
}
