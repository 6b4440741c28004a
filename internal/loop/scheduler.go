package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRunning is returned by Run when the scheduler is already running.
var ErrRunning = errors.New("loop: scheduler already running")

// Scheduler calls Step once per Interval until the context ends, Stop is
// called or Step returns false.
type Scheduler struct {
	Interval time.Duration
	Step     func(now time.Time) bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

// NewScheduler creates a scheduler running step tickRate times a second.
func NewScheduler(tickRate int, step func(now time.Time) bool) *Scheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Scheduler{
		Interval: time.Second / time.Duration(tickRate),
		Step:     step,
	}
}

// Running reports whether Run is in progress.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Run blocks while the loop is active. It returns ctx.Err() when the
// context ends and nil when stopped by Stop or by Step.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	s.running = true
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.stop = nil
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case now := <-ticker.C:
			if !s.Step(now) {
				return nil
			}
		}
	}
}

// Stop ends a running loop. It is safe to call at any time, any number
// of times.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}
