package removal

import "context"

// StartWatcher subscribes to host re-renders of the navigation subtree and
// re-attaches selection affordances when they happen. The watcher never
// participates in deletion; it only keeps the checkboxes alive across
// virtualization churn.
func (e *Engine) StartWatcher(ctx context.Context) error {
	e.mu.Lock()
	if e.stopWatch != nil {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	stop, err := e.surface.WatchTree(ctx, func() {
		_ = e.AttachSelectionAffordances()
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.stopWatch != nil {
		// Another caller won the race; keep its subscription.
		e.mu.Unlock()
		stop()
		return nil
	}
	e.stopWatch = stop
	e.mu.Unlock()
	return nil
}

func (e *Engine) StopWatcher() {
	e.mu.Lock()
	stop := e.stopWatch
	e.stopWatch = nil
	e.mu.Unlock()
	if stop != nil {
		stop()
	}
}
