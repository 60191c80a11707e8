package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingRunner struct {
	runs atomic.Int32
}

func (r *countingRunner) ScheduledRun(context.Context) {
	r.runs.Add(1)
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	r := &countingRunner{}
	s := New(r, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	time.Sleep(55 * time.Millisecond)
	cancel()
	<-done

	if got := r.runs.Load(); got < 2 {
		t.Errorf("expected at least 2 runs, got %d", got)
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	r := &countingRunner{}
	s := New(r, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	s := New(&countingRunner{}, 0)
	if s.interval != 24*time.Hour {
		t.Errorf("default interval = %v, want 24h", s.interval)
	}
}
