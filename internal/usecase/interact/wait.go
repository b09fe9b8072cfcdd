package interact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sidesweep/internal/application/port/output"
)

// DefaultPollInterval is the fixed cadence of every bounded wait.
const DefaultPollInterval = 45 * time.Millisecond

// ErrTimeout reports that a bounded wait's predicate never became true.
var ErrTimeout = errors.New("wait timed out")

// WaitUntil polls cond every DefaultPollInterval until it reports true, the
// timeout elapses, or ctx is cancelled. A probe that is not ready simply
// returns false; probes must not panic.
func WaitUntil(ctx context.Context, timeout time.Duration, cond func() bool) error {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		if err := Sleep(ctx, DefaultPollInterval); err != nil {
			return err
		}
	}
}

// WaitFor polls find until it yields a node.
func WaitFor(ctx context.Context, timeout time.Duration, find func() (output.UINode, bool)) (output.UINode, error) {
	var node output.UINode
	err := WaitUntil(ctx, timeout, func() bool {
		n, ok := find()
		if ok {
			node = n
		}
		return ok
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Sleep suspends for d, waking early on context cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
