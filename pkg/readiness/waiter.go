// Package readiness gates startup on an external dependency becoming
// reachable.
package readiness

import (
	"context"
	"time"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
)

// Waiter blocks until the dependency can be considered ready. A nil
// return means ready; any error means the wait was exhausted or
// cancelled and the main process must not be launched.
type Waiter interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits out a fixed grace period and reports ready without
// verifying the dependency. Degenerate but valid: the only failure is
// cancellation.
type FixedDelay struct {
	Delay time.Duration
}

func (w FixedDelay) Wait(ctx context.Context) error {
	t := time.NewTimer(w.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewWaiter builds the waiter selected by the policy mode.
func NewWaiter(target launch.Dependency, policy launch.WaitPolicy) Waiter {
	if policy.Mode == launch.ModeFixedDelay {
		return FixedDelay{Delay: policy.Delay}
	}
	return Probe{
		Target:   target,
		Interval: policy.ProbeInterval,
		Budget:   policy.Budget,
	}
}
