package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a real-time event loop. Tickers run on their own goroutines but
// only queue work; every callback executes on the goroutine inside Run.
type Loop struct {
	events chan func()
	wg     sync.WaitGroup
}

func NewLoop() *Loop {
	return &Loop{events: make(chan func(), 64)}
}

// Every starts a ticker whose ticks are delivered to the loop. Once cancel
// returns, fn will not run again, including ticks already queued.
func (l *Loop) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		return func() {}
	}
	var cancelled atomic.Bool
	done := make(chan struct{})
	ticker := time.NewTicker(d)
	run := func() {
		if !cancelled.Load() {
			fn()
		}
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case l.events <- run:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(done)
		})
	}
}

// Run executes queued callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}

// Wait blocks until every ticker goroutine has exited. Tickers exit when
// cancelled, so callers cancel all intervals first.
func (l *Loop) Wait() { l.wg.Wait() }
