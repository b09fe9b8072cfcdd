package removal

import (
	"context"
	"fmt"

	"sidesweep/internal/application/port/output"
	"sidesweep/internal/domain/entity"
	"sidesweep/internal/usecase/interact"
	"sidesweep/internal/usecase/locator"
)

// itemRunner drives one item through the fixed removal sequence:
// locate row → locate trigger → scroll+hover → open menu (retried) →
// delete entry → confirm → await row gone → settle → close strays.
// A failed step yields one of the entity step errors; the runner never
// retries the whole sequence.
type itemRunner struct {
	cfg     Config
	surface output.SurfacePort
	loc     *locator.Locator
	log     output.LoggerPort
}

func (r *itemRunner) remove(ctx context.Context, item entity.SelectionEntry) error {
	row, err := interact.WaitFor(ctx, r.cfg.RowWait, func() (output.UINode, bool) {
		return r.loc.FindRow(item.Ref)
	})
	if err != nil {
		return fmt.Errorf("%w (%s)", entity.ErrRowNotFound, item.ID)
	}

	// Handles go stale on re-render, so the trigger probe re-locates the
	// row on every tick instead of trusting the captured one.
	trigger, err := interact.WaitFor(ctx, r.cfg.TriggerWait, func() (output.UINode, bool) {
		if fresh, ok := r.loc.FindRow(item.Ref); ok {
			row = fresh
		}
		return r.loc.FindOptionsTrigger(row)
	})
	if err != nil {
		return fmt.Errorf("%w (%s)", entity.ErrTriggerNotFound, item.ID)
	}

	if err := interact.ScrollIntoViewIfNeeded(ctx, r.surface, row); err != nil {
		r.log.Debug("scroll failed", "item", item.ID, "error", err)
	}
	_ = trigger.Hover()

	if _, err := r.openMenu(ctx, item); err != nil {
		return err
	}

	entry, err := interact.WaitFor(ctx, r.cfg.MenuWait, func() (output.UINode, bool) {
		return r.loc.FindDeleteMenuEntry()
	})
	if err != nil {
		return fmt.Errorf("%w (%s)", entity.ErrMenuItemNotFound, item.ID)
	}
	_ = entry.Click()

	confirm, err := interact.WaitFor(ctx, r.cfg.DialogWait, func() (output.UINode, bool) {
		return r.loc.FindConfirmButton()
	})
	if err != nil {
		return fmt.Errorf("%w (%s)", entity.ErrConfirmNotFound, item.ID)
	}
	_ = confirm.Click()

	// Absence of the row is the success signal; the host emits no
	// completion event. The poll elapsing does not fail the item.
	_ = interact.WaitUntil(ctx, r.cfg.RowGoneWait, func() bool {
		_, ok := r.loc.FindRow(item.Ref)
		return !ok
	})

	_ = interact.Sleep(ctx, r.cfg.SettleDelay)
	r.closeStrays(ctx)
	return nil
}

// openMenu is a bounded retry loop, not a single click: host menus debounce
// synthetic clicks, and short fast retries beat one long wait. Each attempt
// re-locates and re-scrolls before clicking.
func (r *itemRunner) openMenu(ctx context.Context, item entity.SelectionEntry) (output.UINode, error) {
	for attempt := 0; attempt < r.cfg.ClickRetries; attempt++ {
		if attempt > 0 {
			if err := interact.Sleep(ctx, r.cfg.ClickRetryDelay); err != nil {
				break
			}
		}

		row, ok := r.loc.FindRow(item.Ref)
		if !ok {
			continue
		}
		trigger, ok := r.loc.FindOptionsTrigger(row)
		if !ok {
			continue
		}

		_ = interact.ScrollIntoViewIfNeeded(ctx, r.surface, trigger)
		if err := trigger.Click(); err != nil {
			r.log.Debug("trigger click failed", "item", item.ID, "attempt", attempt, "error", err)
		}

		menu, err := interact.WaitFor(ctx, r.cfg.MenuOpenProbe, func() (output.UINode, bool) {
			return r.loc.FindOpenMenu(trigger)
		})
		if err == nil {
			return menu, nil
		}
	}
	return nil, fmt.Errorf("%w (%s)", entity.ErrMenuNotOpened, item.ID)
}

// closeStrays dismisses any leftover menu or dialog so the next item starts
// from a clean tree. Best-effort and itself non-failing.
func (r *itemRunner) closeStrays(ctx context.Context) {
	if btn, ok := r.loc.FindCancelButton(); ok {
		_ = btn.Click()
	}
	if menu, ok := r.loc.FindOpenMenu(nil); ok && menu.Visible() {
		_ = r.surface.PressEscape()
	}
	if _, ok := r.surface.Query(`[role="dialog"]`); ok {
		_ = r.surface.PressEscape()
	}
}
