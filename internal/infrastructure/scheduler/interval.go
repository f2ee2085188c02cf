package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/juju/clock"

	"ProfileScanner/internal/ports"
)

// IntervalScheduler triggers a job every interval on its own goroutine.
// A job that outlasts the interval delays the next trigger; runs never
// overlap.
type IntervalScheduler struct {
	interval   time.Duration
	runOnStart bool
	clock      clock.Clock

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler. A nil clock means the wall clock.
func NewIntervalScheduler(interval time.Duration, runOnStart bool, clk clock.Clock) *IntervalScheduler {
	if clk == nil {
		clk = clock.WallClock
	}
	return &IntervalScheduler{interval: interval, runOnStart: runOnStart, clock: clk}
}

// Start launches the trigger loop. It returns immediately.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if s.interval <= 0 {
		return fmt.Errorf("invalid schedule interval %s", s.interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return fmt.Errorf("scheduler already started")
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop(ctx, job, s.stop, s.done)
	return nil
}

func (s *IntervalScheduler) loop(ctx context.Context, job func(time.Time), stop, done chan struct{}) {
	defer close(done)

	if s.runOnStart {
		job(s.clock.Now())
	}
	for {
		select {
		case t := <-s.clock.After(s.interval):
			job(t)
		case <-ctx.Done():
			return
		case <-stop:
			return
		}
	}
}

// Stop halts the loop and waits for a running job to return or ctx to end.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
