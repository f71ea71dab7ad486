package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunInvokesTask(t *testing.T) {
	var runs atomic.Int32
	p := New("test", 5*time.Millisecond, zap.NewNop(), func(context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return runs.Load() >= 3 },
		time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	var runs atomic.Int32
	p := New("test", 5*time.Millisecond, zap.NewNop(), func(context.Context) error {
		runs.Add(1)
		return nil
	})
	p.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, runs.Load(), "paused poller must not run the task")

	p.Resume()
	require.Eventually(t, func() bool { return runs.Load() >= 1 },
		time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestPauseWaitsForInFlightRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var runs atomic.Int32
	p := New("test", time.Millisecond, zap.NewNop(), func(context.Context) error {
		if runs.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	<-started
	paused := make(chan struct{})
	go func() {
		p.Pause()
		close(paused)
	}()

	select {
	case <-paused:
		t.Fatal("Pause returned while a run was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-paused:
	case <-time.After(time.Second):
		t.Fatal("Pause did not return after the run finished")
	}

	// With the flag set, no further runs start.
	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())

	cancel()
	<-done
}

func TestBackoffOnFailures(t *testing.T) {
	p := New("test", 100*time.Millisecond, zap.NewNop(), func(context.Context) error {
		return errors.New("gateway down")
	})

	within := func(d, base time.Duration) bool {
		lo := time.Duration(float64(base) * (1 - jitterFraction))
		hi := time.Duration(float64(base) * (1 + jitterFraction))
		return d >= lo && d <= hi
	}

	assert.True(t, within(p.nextDelay(), 100*time.Millisecond))

	p.failures = 2
	assert.True(t, within(p.nextDelay(), 400*time.Millisecond))

	p.failures = maxDoublings
	assert.True(t, within(p.nextDelay(), 800*time.Millisecond), "backoff caps at 8x")
}

func TestFailureCountResetsOnSuccess(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	p := New("test", time.Millisecond, zap.NewNop(), func(context.Context) error {
		if fail.Load() {
			return errors.New("boom")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.failures == maxDoublings
	}, time.Second, time.Millisecond)

	fail.Store(false)
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.failures == 0
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestSetInterval(t *testing.T) {
	p := New("test", time.Hour, zap.NewNop(), func(context.Context) error { return nil })

	p.SetInterval(10 * time.Millisecond)
	assert.Less(t, p.nextDelay(), time.Second)

	p.SetInterval(0) // ignored
	assert.Less(t, p.nextDelay(), time.Second)
}
