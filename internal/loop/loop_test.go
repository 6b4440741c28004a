package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestAccumulator(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	acc := NewAccumulator(50, 5) // 20ms steps

	if n := acc.Advance(clock.Now()); n != 1 {
		t.Errorf("first Advance = %d, expected 1", n)
	}

	tests := []struct {
		elapsed  time.Duration
		expected int
	}{
		{10 * time.Millisecond, 0},
		{10 * time.Millisecond, 1}, // Carry-over completes a step
		{45 * time.Millisecond, 2},
		{15 * time.Millisecond, 1}, // 5ms left from before
		{0, 0},
		{time.Second, 5}, // Stall: capped
		{20 * time.Millisecond, 1},
	}
	for i, tc := range tests {
		if n := acc.Advance(clock.Advance(tc.elapsed)); n != tc.expected {
			t.Errorf("case %d: Advance after %v = %d, expected %d", i, tc.elapsed, n, tc.expected)
		}
	}
}

func TestAccumulatorClockBackwards(t *testing.T) {
	start := time.Unix(100, 0)
	acc := NewAccumulator(60, 5)
	acc.Start(start)
	if n := acc.Advance(start.Add(-time.Second)); n != 0 {
		t.Errorf("backwards clock should yield no steps, got %d", n)
	}
}

func TestAccumulatorDefaults(t *testing.T) {
	acc := NewAccumulator(0, 0)
	if acc.Step != time.Second/60 || acc.MaxSteps != DefaultMaxSteps {
		t.Errorf("defaults = %v/%d", acc.Step, acc.MaxSteps)
	}
}

func TestSchedulerStepStops(t *testing.T) {
	var calls atomic.Int32
	s := &Scheduler{
		Interval: time.Millisecond,
		Step: func(time.Time) bool {
			return calls.Add(1) < 5
		},
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, expected nil", err)
	}
	if calls.Load() != 5 {
		t.Errorf("Step called %d times, expected 5", calls.Load())
	}
	if s.Running() {
		t.Error("scheduler should not be running after Run returns")
	}
}

func TestSchedulerStop(t *testing.T) {
	started := make(chan struct{})
	var once atomic.Bool
	s := &Scheduler{
		Interval: time.Millisecond,
		Step: func(time.Time) bool {
			if once.CompareAndSwap(false, true) {
				close(started)
			}
			return true
		},
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	<-started
	s.Stop()
	s.Stop() // Idempotent

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not end the loop")
	}
}

func TestSchedulerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(1000, func(time.Time) bool {
		cancel()
		return true
	})

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
}

func TestSchedulerStopBeforeRun(t *testing.T) {
	s := NewScheduler(60, func(time.Time) bool { return false })
	s.Stop() // No-op
	if err := s.Run(context.Background()); err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewManualClock(start)
	if !c.Now().Equal(start) {
		t.Error("clock should start at start")
	}
	c.Advance(time.Second)
	if got := c.Now().Sub(start); got != time.Second {
		t.Errorf("clock advanced %v, expected 1s", got)
	}
}
