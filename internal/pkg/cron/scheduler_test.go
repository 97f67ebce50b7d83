package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	if got := first.Load(); got != 2 {
		t.Errorf("first job ran %d times, want 2", got)
	}
	if got := second.Load(); got != 2 {
		t.Errorf("second job ran %d times, want 2", got)
	}
}

func TestSchedulerStartRunsImmediately(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{})
	var once atomic.Bool
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(ran)
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("counted", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	after := runs.Load()
	if after < 1 {
		t.Fatalf("job ran %d times, want at least 1", after)
	}

	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != after {
		t.Errorf("job ran after Stop: %d -> %d", after, got)
	}
}
