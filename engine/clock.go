package engine

import (
	"context"
	"time"
)

// Clock creates periodic timers. The engine owns at most one live timer and
// replaces it whenever the tick interval changes.
type Clock interface {
	Every(interval time.Duration, fn func()) Timer
}

// Timer is a periodic callback installed by a Clock.
type Timer interface {
	// Stop cancels the timer. It must not block, since the engine stops its
	// timer from inside a tick.
	Stop()
}

// SystemClock runs each timer on its own goroutine driven by a time.Ticker.
type SystemClock struct{}

// Every calls fn once per interval until the returned timer is stopped.
func (SystemClock) Every(interval time.Duration, fn func()) Timer {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// a tick may race with cancellation; prefer cancellation
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()

	return tickerTimer{cancel: cancel}
}

type tickerTimer struct {
	cancel context.CancelFunc
}

func (t tickerTimer) Stop() {
	t.cancel()
}
