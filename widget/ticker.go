package widget

import (
	"context"
	"time"

	"github.com/nvkalinin/widget-calendar/log"
)

// Ticker вызывает Tick на каждой границе Interval (для секунды — ровно при смене секунды),
// чтобы часы не отставали от системного времени на долю интервала.
type Ticker struct {
	Interval time.Duration
	Tick     func(now time.Time)

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewTicker(interval time.Duration, tick func(now time.Time)) *Ticker {
	return &Ticker{
		Interval: interval,
		Tick:     tick,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Run блокируется до вызова Shutdown.
func (t *Ticker) Run() {
	defer close(t.doneCh)

	timer := time.NewTimer(t.untilNextTick(time.Now()))
	defer timer.Stop()

	for {
		select {
		case now := <-timer.C:
			t.Tick(now)
			timer.Reset(t.untilNextTick(time.Now()))

		case <-t.stopCh:
			return
		}
	}
}

func (t *Ticker) Shutdown(ctx context.Context) error {
	close(t.stopCh)

	select {
	case <-t.doneCh:
		return nil
	case <-ctx.Done():
		log.Printf("[WARN] widget.Ticker shutdown timeout")
		return ctx.Err()
	}
}

func (t *Ticker) untilNextTick(now time.Time) time.Duration {
	next := now.Truncate(t.Interval).Add(t.Interval)
	return next.Sub(now)
}
