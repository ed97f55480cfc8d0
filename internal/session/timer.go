package session

import (
	"context"
	"time"
)

// restTimer runs a callback on a fixed cadence until the callback reports
// done or the context ends. Countdown loops share it so they all carry the
// same cancellation behavior.
type restTimer struct {
	interval time.Duration
}

func newRestTimer(interval time.Duration) *restTimer {
	return &restTimer{interval: interval}
}

// Run calls fn immediately and then once per interval until fn returns
// false or an error, or the context is done.
func (t *restTimer) Run(ctx context.Context, fn func() (bool, error)) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		keepGoing, err := fn()
		if err != nil || !keepGoing {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
