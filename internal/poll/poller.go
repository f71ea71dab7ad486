// Package poll replaces the old fixed 30-second dashboard re-fetch with a
// scheduled task that can be paused, re-timed, and cancelled. Jitter keeps a
// fleet of boards from hammering the gateway in lockstep, and consecutive
// failures back the interval off instead of retrying at full speed.
package poll

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	jitterFraction = 0.1
	maxDoublings   = 3 // backoff caps at 8x the interval
)

type Poller struct {
	name   string
	run    func(ctx context.Context) error
	logger *zap.Logger

	mu       sync.Mutex
	interval time.Duration
	failures int

	// runMu serializes task runs with Pause and Resume: acquiring it waits
	// out a run already in flight.
	runMu  sync.Mutex
	paused bool
}

func New(name string, interval time.Duration, logger *zap.Logger, run func(ctx context.Context) error) *Poller {
	return &Poller{name: name, interval: interval, logger: logger, run: run}
}

// SetInterval re-times the poller; the new interval takes effect after the
// current wait.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

// Pause suspends runs without stopping the loop and blocks until a run
// already in flight has finished. Handlers pause the poller around a manual
// refresh so a stale poll response can't land after the user-triggered one.
func (p *Poller) Pause() {
	p.runMu.Lock()
	p.paused = true
	p.runMu.Unlock()
}

func (p *Poller) Resume() {
	p.runMu.Lock()
	p.paused = false
	p.runMu.Unlock()
}

// Run blocks until ctx is cancelled, invoking the task on the schedule.
func (p *Poller) Run(ctx context.Context) {
	for {
		timer := time.NewTimer(p.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		p.runMu.Lock()
		if p.paused {
			p.runMu.Unlock()
			continue
		}
		err := p.run(ctx)
		p.runMu.Unlock()

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.mu.Lock()
			if p.failures < maxDoublings {
				p.failures++
			}
			failures := p.failures
			p.mu.Unlock()
			p.logger.Warn("poll failed",
				zap.String("poller", p.name),
				zap.Int("consecutive", failures),
				zap.Error(err))
			continue
		}
		p.mu.Lock()
		p.failures = 0
		p.mu.Unlock()
	}
}

// nextDelay is the configured interval doubled per consecutive failure
// (capped), with +/-10% jitter.
func (p *Poller) nextDelay() time.Duration {
	p.mu.Lock()
	d := p.interval << p.failures
	p.mu.Unlock()

	jitter := time.Duration((rand.Float64()*2 - 1) * jitterFraction * float64(d))
	return d + jitter
}
