package gamepad

import (
	"context"
	"time"
)

// Holder answers whether an event still holds its direction.
type Holder interface {
	IsHolding(ev *Event) bool
}

// Repeat calls fn every interval for as long as ev holds its direction.
// It returns once another event takes the hold, a center event clears it or
// ctx is done. If ev never held anything fn is not called.
func Repeat(ctx context.Context, h Holder, ev *Event, interval time.Duration, fn func(ev *Event)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for h.IsHolding(ev) {
		fn(ev)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
