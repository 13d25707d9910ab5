package syncer_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opaline-labs/taskdeck/internal/syncer"
)

// controlledFetch blocks each fetch until released, so tests can hold
// the scheduler in the fetching state deterministically.
type controlledFetch struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newControlledFetch() *controlledFetch {
	return &controlledFetch{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (f *controlledFetch) fetch(ctx context.Context) error {
	f.calls.Add(1)
	f.started <- struct{}{}
	select {
	case <-f.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func waitIdle(t *testing.T, s *syncer.Scheduler) {
	t.Helper()
	require.Eventually(t, func() bool {
		return s.State() == syncer.StateIdle
	}, time.Second, time.Millisecond)
}

func TestScheduler_SingleTrigger(t *testing.T) {
	f := newControlledFetch()
	s := syncer.New(f.fetch, 0)
	defer s.Stop()

	s.Notify(syncer.TriggerManual)
	<-f.started
	assert.Equal(t, syncer.StateFetching, s.State())

	f.release <- struct{}{}
	waitIdle(t, s)
	assert.Equal(t, int32(1), f.calls.Load())
}

// Any number of triggers during an in-flight fetch collapse into
// exactly one follow-up fetch.
func TestScheduler_CoalescesTriggersDuringFetch(t *testing.T) {
	f := newControlledFetch()
	s := syncer.New(f.fetch, 0)
	defer s.Stop()

	s.Notify(syncer.TriggerManual)
	<-f.started

	s.Notify(syncer.TriggerFocus)
	s.Notify(syncer.TriggerVisible)
	s.Notify(syncer.TriggerMutation)
	s.Notify(syncer.TriggerInterval)
	assert.Equal(t, syncer.StateScheduled, s.State())

	// Completing the in-flight fetch starts the single follow-up.
	f.release <- struct{}{}
	<-f.started
	f.release <- struct{}{}

	waitIdle(t, s)
	assert.Equal(t, int32(2), f.calls.Load(), "exactly one follow-up fetch")
}

func TestScheduler_RetriesOnNextTriggerAfterError(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("network unreachable")
		}
		return nil
	}

	s := syncer.New(fetch, 0)
	defer s.Stop()

	// Failed fetch returns the machine to idle; no immediate retry.
	s.Notify(syncer.TriggerManual)
	waitIdle(t, s)
	assert.Equal(t, int32(1), calls.Load())

	// The next trigger retries.
	s.Notify(syncer.TriggerInterval)
	waitIdle(t, s)
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_StopCancelsInFlightFetch(t *testing.T) {
	var fetchCtx atomic.Value
	entered := make(chan struct{})
	fetch := func(ctx context.Context) error {
		fetchCtx.Store(ctx)
		close(entered)
		<-ctx.Done()
		return ctx.Err()
	}

	s := syncer.New(fetch, 0)
	s.Notify(syncer.TriggerManual)
	<-entered

	// A trigger queued behind the in-flight fetch is discarded on Stop.
	s.Notify(syncer.TriggerFocus)
	s.Stop()

	ctx := fetchCtx.Load().(context.Context)
	assert.Error(t, ctx.Err(), "in-flight fetch must see cancellation")
	assert.Equal(t, syncer.StateIdle, s.State())
}

func TestScheduler_IgnoresTriggersAfterStop(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}

	s := syncer.New(fetch, 0)
	s.Notify(syncer.TriggerManual)
	waitIdle(t, s)
	s.Stop()

	before := calls.Load()
	s.Notify(syncer.TriggerManual)
	s.Notify(syncer.TriggerInterval)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, before, calls.Load())
}

func TestScheduler_IntervalPolling(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}

	s := syncer.New(fetch, 5*time.Millisecond)
	s.Start()
	defer s.Stop()

	// Initial fetch plus at least two interval ticks.
	require.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := syncer.New(func(ctx context.Context) error { return nil }, 0)
	s.Start()
	s.Stop()
	s.Stop()
}
