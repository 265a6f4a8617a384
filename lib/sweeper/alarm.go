package sweeper

import (
	"context"
	"time"
)

type alarmClock struct {
	interval time.Duration
	C        chan time.Time
}

func newAlarmClock(interval time.Duration) *alarmClock {
	return &alarmClock{
		interval: interval,
		C:        make(chan time.Time),
	}
}

// Start emits one wakeup per interval until ctx is done, then closes C.
// Wakeups that arrive while the previous one is still being handled are
// dropped rather than queued.
func (a *alarmClock) Start(ctx context.Context) <-chan time.Time {
	go func() {
		defer close(a.C)

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				select {
				case a.C <- t.UTC():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return a.C
}
