package removal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sidesweep/internal/application/port/input"
	"sidesweep/internal/application/port/output"
	"sidesweep/internal/domain/entity"
	"sidesweep/internal/usecase/interact"
	"sidesweep/internal/usecase/locator"
)

var _ input.Remover = (*Engine)(nil)

// statusLinger is how long the final summary stays up before the status
// display is cleared.
const statusLinger = 4 * time.Second

// Progress is the machine-readable snapshot served over the progress API.
type Progress struct {
	JobID     string `json:"job_id,omitempty"`
	Running   bool   `json:"running"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	LastError string `json:"last_error,omitempty"`
}

// Engine owns the selection set and drains it with a bounded worker pool.
// One engine instance is constructed at startup and torn down explicitly;
// it holds no package-level state.
type Engine struct {
	cfg     Config
	surface output.SurfacePort
	loc     *locator.Locator
	status  output.StatusPort
	log     output.LoggerPort

	sel *entity.SelectionSet

	mu        sync.Mutex
	enabled   bool
	running   bool
	job       *entity.RemovalJob
	lastError string
	stopWatch func()
}

func New(surface output.SurfacePort, status output.StatusPort, log output.LoggerPort, cfg Config) *Engine {
	return &Engine{
		cfg:     cfg.normalized(),
		surface: surface,
		loc:     locator.New(surface),
		status:  status,
		log:     log,
		sel:     entity.NewSelectionSet(),
		enabled: true,
	}
}

// SetEnabled gates RunRemoval; a disabled engine turns runs into no-ops.
func (e *Engine) SetEnabled(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = on
}

// Running reports whether a removal run is in flight. The flag is toggled
// only by the orchestrator, never by workers.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) SelectionCount() int { return e.sel.Len() }

// AttachSelectionAffordances injects a checkbox into every eligible row and
// syncs its checked state with the selection set. Called at startup, after
// host re-renders (via the watcher), and after each run.
func (e *Engine) AttachSelectionAffordances() error {
	rows := e.loc.Rows()
	for _, row := range rows {
		if err := row.EnsureAffordance(); err != nil {
			continue
		}
		ref, ok := e.loc.RowRef(row)
		if !ok {
			continue
		}
		id, ok := locator.ExtractID(ref)
		if !ok {
			continue
		}
		_ = row.SetChecked(e.sel.Has(id))
	}
	return nil
}

// SelectAll marks every eligible row. With zero eligible rows it selects
// nothing and flashes a transient notice.
func (e *Engine) SelectAll() (int, error) {
	rows := e.loc.Rows()
	count := 0
	for _, row := range rows {
		ref, ok := e.loc.RowRef(row)
		if !ok {
			continue
		}
		id, ok := locator.ExtractID(ref)
		if !ok {
			continue
		}
		e.sel.Add(entity.SelectionEntry{ID: id, Ref: ref})
		_ = row.EnsureAffordance()
		_ = row.SetChecked(true)
		count++
	}
	if count == 0 {
		e.status.FlashError("nothing to select")
	}
	return count, nil
}

// Toggle flips one ref in or out of the selection. selected reports the
// state after the call.
func (e *Engine) Toggle(ref string) (bool, error) {
	id, ok := locator.ExtractID(ref)
	if !ok {
		return false, fmt.Errorf("ref has no identifier segment: %q", ref)
	}
	if e.sel.Has(id) {
		e.sel.Remove(id)
		e.setRowChecked(ref, false)
		return false, nil
	}
	e.sel.Add(entity.SelectionEntry{ID: id, Ref: ref})
	e.setRowChecked(ref, true)
	return true, nil
}

func (e *Engine) ClearSelection() {
	for _, it := range e.sel.Snapshot() {
		e.setRowChecked(it.Ref, false)
	}
	e.sel.Clear()
}

func (e *Engine) setRowChecked(ref string, on bool) {
	if row, ok := e.loc.FindRow(ref); ok {
		_ = row.SetChecked(on)
	}
}

// Progress returns the current run snapshot (zero-valued when idle).
func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := Progress{Running: e.running, LastError: e.lastError}
	if e.job != nil {
		processed, succeeded, failed, total := e.job.Progress()
		p.JobID = e.job.ID
		p.Total = total
		p.Processed = processed
		p.Succeeded = succeeded
		p.Failed = failed
	}
	return p
}

// RunRemoval snapshots the selection and drains it. Individual item failures
// are counted and reported; the run itself has no fatal failure mode.
func (e *Engine) RunRemoval(ctx context.Context) (*input.RunSummary, error) {
	e.mu.Lock()
	if !e.enabled || e.running {
		e.mu.Unlock()
		return nil, nil
	}
	items := e.sel.Snapshot()
	if len(items) == 0 {
		e.mu.Unlock()
		return nil, nil
	}
	job := entity.NewRemovalJob(items)
	e.running = true
	e.job = job
	e.lastError = ""
	e.mu.Unlock()

	log := e.log.WithField("job", job.ID)
	log.Info("removal run started", "total", job.Total(), "concurrency", e.cfg.Concurrency)

	if e.cfg.SuppressPopovers {
		_ = e.surface.SetPopoverSuppression(true)
	}
	e.status.SetBusy(true)

	defer func() {
		_ = e.surface.SetPopoverSuppression(false)
		e.status.SetBusy(false)
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		go func() {
			time.Sleep(statusLinger)
			e.status.Clear()
		}()
	}()

	e.navigationGuard(ctx, job, log)
	e.status.UpdateProgress(0, job.Total(), 0)

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			e.workerLoop(ctx, worker, job, log)
		}(i)
	}
	wg.Wait()

	_, succeeded, failed, total := job.Progress()
	e.status.ShowSummary(succeeded, total, failed)
	log.Info("removal run finished", "succeeded", succeeded, "failed", failed, "total", total)

	_ = interact.WaitForListReady(ctx, e.loc, e.cfg.ListReadyWait)
	_ = e.AttachSelectionAffordances()

	return &input.RunSummary{
		JobID:     job.ID,
		Total:     total,
		Succeeded: succeeded,
		Failed:    failed,
	}, nil
}

// navigationGuard moves the host off a selected item before deletion starts:
// deleting the conversation being viewed makes some host builds redirect mid
// run. Prefers the neutral-view control, falls back to a soft navigation,
// then waits (best-effort) for the list to come back.
func (e *Engine) navigationGuard(ctx context.Context, job *entity.RemovalJob, log output.LoggerPort) {
	id, ok := locator.ExtractID(e.surface.CurrentPath())
	if !ok || !job.Contains(id) {
		return
	}
	log.Info("navigation guard engaged", "viewing", id)
	if btn, ok := e.loc.FindNewViewControl(); ok {
		_ = btn.Click()
	} else if err := e.surface.Navigate("/"); err != nil {
		log.Warn("guard navigation failed", "error", err)
	}
	if err := interact.WaitForListReady(ctx, e.loc, e.cfg.ListReadyWait); err != nil {
		log.Debug("list not ready after guard", "error", err)
	}
}

func (e *Engine) workerLoop(ctx context.Context, worker int, job *entity.RemovalJob, log output.LoggerPort) {
	runner := &itemRunner{
		cfg:     e.cfg,
		surface: e.surface,
		loc:     e.loc,
		log:     log.WithField("worker", worker),
	}
	for {
		item, ok := job.Claim()
		if !ok {
			return
		}
		ilog := runner.log.WithField("item", item.ID)

		err := runner.remove(ctx, item)
		if err != nil {
			job.RecordFailure()
			msg := e.failureMessage(item, err)
			ilog.Warn("item failed", "error", err)
			e.status.FlashError(msg)
			e.mu.Lock()
			e.lastError = msg
			e.mu.Unlock()
			e.captureEvidence(ctx, job, item, ilog)
			runner.closeStrays(ctx)
		} else {
			job.RecordSuccess()
			ilog.Info("item removed")
		}

		// Regardless of outcome the item leaves the live selection, and
		// its affordance is unchecked if the row survived.
		e.sel.Remove(item.ID)
		e.setRowChecked(item.Ref, false)

		processed, _, failed, total := job.Progress()
		e.status.UpdateProgress(processed, total, failed)

		_ = interact.Sleep(ctx, e.cfg.Stagger)
	}
}

// failureMessage includes the row's visible title when it is still around;
// a bare id helps nobody reading the status pill.
func (e *Engine) failureMessage(item entity.SelectionEntry, err error) string {
	name := item.ID
	if row, ok := e.loc.FindRow(item.Ref); ok {
		if label := locator.RowLabel(row.HTML()); label != "" {
			name = label
		}
	}
	return fmt.Sprintf("failed to delete %q: %v", name, err)
}
