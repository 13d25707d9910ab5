// Package syncer implements the client-side refresh policy that keeps
// a rendered board view fresh without a push channel. A Scheduler owns
// a polling timer and accepts external triggers (focus regained,
// visibility regained, manual refresh, completed mutation); concurrent
// triggers during an in-flight fetch coalesce into exactly one
// follow-up fetch.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Trigger identifies why a refresh was requested.
type Trigger string

const (
	TriggerInterval Trigger = "interval"
	TriggerFocus    Trigger = "focus"
	TriggerVisible  Trigger = "visible"
	TriggerManual   Trigger = "manual"
	TriggerMutation Trigger = "mutation"
)

// State of the scheduler's fetch machine.
type State int

const (
	// StateIdle: no fetch in flight; the next trigger starts one.
	StateIdle State = iota
	// StateFetching: a fetch is in flight; triggers coalesce.
	StateFetching
	// StateScheduled: a fetch is in flight and exactly one follow-up
	// is queued behind it.
	StateScheduled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateScheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// FetchFunc pulls a fresh snapshot and applies it to the view. It
// must honor ctx cancellation: a fetch that outlives the scheduler is
// dropped via the cancelled context, never applied.
type FetchFunc func(ctx context.Context) error

// Scheduler drives refetches of a single view's snapshot.
type Scheduler struct {
	fetch    FetchFunc
	interval time.Duration

	mu      sync.Mutex
	state   State
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler. An interval of zero disables the polling
// timer; the scheduler then acts only on explicit triggers.
func New(fetch FetchFunc, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		fetch:    fetch,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the polling timer and issues an initial fetch.
func (s *Scheduler) Start() {
	s.Notify(TriggerManual)

	if s.interval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Notify(TriggerInterval)
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// Notify requests a refresh. If the scheduler is idle a fetch starts
// immediately; if a fetch is in flight, any number of triggers
// collapse into a single scheduled follow-up.
func (s *Scheduler) Notify(trigger Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	switch s.state {
	case StateIdle:
		s.state = StateFetching
		s.startFetch(trigger)
	case StateFetching:
		s.state = StateScheduled
	case StateScheduled:
		// Already queued; later triggers collapse into it.
	}
}

// startFetch spawns the fetch goroutine. Caller must hold s.mu.
func (s *Scheduler) startFetch(trigger Trigger) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := s.fetch(s.ctx); err != nil {
			// No backoff: the next trigger (usually the interval
			// tick) retries, and the view keeps its last-known-good
			// snapshot meanwhile.
			slog.Warn("snapshot fetch failed",
				"trigger", string(trigger),
				"error", err,
			)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.stopped {
			s.state = StateIdle
			return
		}

		if s.state == StateScheduled {
			s.state = StateFetching
			s.startFetch(trigger)
			return
		}
		s.state = StateIdle
	}()
}

// State returns the current state of the fetch machine.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stop releases the timer, cancels any in-flight fetch, and waits for
// goroutines to exit. After Stop returns no fetch result is applied
// and further triggers are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}
