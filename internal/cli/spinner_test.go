package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopReturns(t *testing.T) {
	sp := newSpinnerWithContext(context.Background(), "working")
	sp.Start()

	done := make(chan struct{})
	go func() {
		sp.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sp := newSpinnerWithContext(ctx, "working")
	sp.Start()
	cancel()

	select {
	case <-sp.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("animation goroutine did not exit on context cancellation")
	}
}
