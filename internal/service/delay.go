package service

import (
	"context"
	"time"
)

// DelayPolicy is the simulated "thinking" time a caller waits before a plan
// is produced. The planner itself never waits.
type DelayPolicy interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits for a constant duration or until ctx is done.
type FixedDelay time.Duration

// NoDelay returns immediately unless ctx is already done.
const NoDelay = FixedDelay(0)

func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
