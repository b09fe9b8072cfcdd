package removal

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRemoval_AllSucceed(t *testing.T) {
	app := newFakeApp("/c/one", "/c/two", "/c/three")
	eng, rec := newTestEngine(app, fastConfig())

	n, err := eng.SelectAll()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	summary, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, eng.SelectionCount(), "selection ends empty")
	assert.False(t, eng.Running(), "running flag cleared")
	assert.Equal(t, 0, app.rowCount())

	last, ok := rec.lastSummary()
	require.True(t, ok)
	assert.Equal(t, [3]int{3, 3, 0}, last)
}

func TestRunRemoval_OneMenuBroken(t *testing.T) {
	app := newFakeApp("/c/one", "/c/two", "/c/three")
	app.breakMenu("two")
	eng, rec := newTestEngine(app, fastConfig())

	_, err := eng.SelectAll()
	require.NoError(t, err)

	summary, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, eng.Running())

	// The failed item still leaves the selection.
	assert.Equal(t, 0, eng.SelectionCount())
	assert.Equal(t, 1, app.rowCount(), "broken row survives in the host")
	assert.GreaterOrEqual(t, rec.flashCount(), 1, "failure surfaced transiently")

	last, ok := rec.lastSummary()
	require.True(t, ok)
	assert.Equal(t, [3]int{2, 3, 1}, last)
}

func TestRunRemoval_CountersAlwaysReconcile(t *testing.T) {
	app := newFakeApp("/c/a", "/c/b", "/c/c", "/c/d")
	app.breakMenu("a")
	app.breakMenu("c")
	eng, _ := newTestEngine(app, fastConfig())
	_, _ = eng.SelectAll()

	summary, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, summary.Total, summary.Succeeded+summary.Failed)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Failed)
}

func TestRunRemoval_Concurrent(t *testing.T) {
	refs := []string{"/c/a", "/c/b", "/c/c", "/c/d", "/c/e", "/c/f"}
	app := newFakeApp(refs...)
	cfg := fastConfig()
	cfg.Concurrency = 3
	eng, _ := newTestEngine(app, cfg)
	_, _ = eng.SelectAll()

	summary, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, len(refs), summary.Total)
	assert.Equal(t, summary.Total, summary.Succeeded+summary.Failed)
	assert.False(t, eng.Running())
	assert.Equal(t, 0, eng.SelectionCount())
}

func TestRunRemoval_EmptySelectionNoop(t *testing.T) {
	app := newFakeApp("/c/one")
	eng, rec := newTestEngine(app, fastConfig())

	summary, err := eng.RunRemoval(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, 1, app.rowCount())
	assert.Empty(t, rec.busy)
}

func TestRunRemoval_DisabledNoop(t *testing.T) {
	app := newFakeApp("/c/one")
	eng, _ := newTestEngine(app, fastConfig())
	_, _ = eng.SelectAll()
	eng.SetEnabled(false)

	summary, err := eng.RunRemoval(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, 1, app.rowCount())
}

func TestRunRemoval_NavigationGuard(t *testing.T) {
	app := newFakeApp("/c/one", "/c/two")
	app.surface.Path = "/c/one" // currently viewing a selected item

	var navigated atomic.Int32
	app.surface.NavigateFn = func(path string) {
		navigated.Add(1)
		app.surface.Path = path
	}

	eng, _ := newTestEngine(app, fastConfig())
	_, _ = eng.SelectAll()

	summary, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, int32(1), navigated.Load(), "guard navigated away before deleting")
	assert.Equal(t, "/", app.surface.CurrentPath())
}

func TestRunRemoval_GuardSkippedWhenViewingUnselected(t *testing.T) {
	app := newFakeApp("/c/one")
	app.surface.Path = "/c/unrelated"

	var navigated atomic.Int32
	app.surface.NavigateFn = func(path string) {
		navigated.Add(1)
		app.surface.Path = path
	}

	eng, _ := newTestEngine(app, fastConfig())
	_, _ = eng.SelectAll()

	_, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), navigated.Load())
}

func TestRunRemoval_PopoverSuppressionCleared(t *testing.T) {
	app := newFakeApp("/c/one")
	cfg := fastConfig()
	cfg.SuppressPopovers = true
	eng, _ := newTestEngine(app, cfg)
	_, _ = eng.SelectAll()

	_, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	assert.False(t, app.surface.PopoverSuppressed, "quiet mode cleared in the finally path")
}

func TestRunRemoval_CancelledContextStillReconciles(t *testing.T) {
	app := newFakeApp("/c/one", "/c/two", "/c/three")
	eng, _ := newTestEngine(app, fastConfig())
	_, _ = eng.SelectAll()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := eng.RunRemoval(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, summary.Total, summary.Succeeded+summary.Failed)
	assert.False(t, eng.Running())
}

func TestSelectAll_NothingEligible(t *testing.T) {
	s := newFakeApp().surface // nav exists, zero rows
	rec := &statusRecorder{}
	eng := New(s, rec, nopLogger{}, fastConfig())

	n, err := eng.SelectAll()
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, rec.flashCount(), "transient nothing-to-select notice")
}

func TestToggleAndClear(t *testing.T) {
	app := newFakeApp("/c/one", "/c/two")
	eng, _ := newTestEngine(app, fastConfig())

	on, err := eng.Toggle("/c/one")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, eng.SelectionCount())

	app.mu.Lock()
	row := app.rows["one"]
	app.mu.Unlock()
	assert.True(t, row.IsChecked())

	off, err := eng.Toggle("/c/one")
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, 0, eng.SelectionCount())
	assert.False(t, row.IsChecked())

	_, _ = eng.Toggle("/c/one")
	_, _ = eng.Toggle("/c/two")
	eng.ClearSelection()
	assert.Equal(t, 0, eng.SelectionCount())
	assert.False(t, row.IsChecked())
}

func TestToggle_RejectsNonDeletableRef(t *testing.T) {
	app := newFakeApp("/c/one")
	eng, _ := newTestEngine(app, fastConfig())
	_, err := eng.Toggle("/settings")
	assert.Error(t, err)
}

func TestWatcher_ReattachesAffordances(t *testing.T) {
	app := newFakeApp("/c/one")
	eng, _ := newTestEngine(app, fastConfig())
	require.NoError(t, eng.AttachSelectionAffordances())

	app.mu.Lock()
	row := app.rows["one"]
	app.mu.Unlock()
	assert.True(t, row.Affordance)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, eng.StartWatcher(ctx))
	assert.Equal(t, 1, app.surface.WatcherCount())

	// Host re-render drops and recreates the row.
	app.surface.Detach(row)
	app.mu.Lock()
	delete(app.rows, "one")
	app.mu.Unlock()
	fresh := app.addRow("/c/one")
	assert.False(t, fresh.Affordance)

	app.surface.TriggerTreeChange()
	assert.Eventually(t, func() bool { return fresh.Affordance }, time.Second, 10*time.Millisecond)

	eng.StopWatcher()
	assert.Equal(t, 0, app.surface.WatcherCount())
}

func TestStartWatcher_ConcurrentCallsKeepOneSubscription(t *testing.T) {
	app := newFakeApp("/c/one")
	eng, _ := newTestEngine(app, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, eng.StartWatcher(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, app.surface.WatcherCount(), "losing subscriptions are stopped, not orphaned")
	eng.StopWatcher()
	assert.Equal(t, 0, app.surface.WatcherCount())
}

func TestProgressSnapshot(t *testing.T) {
	app := newFakeApp("/c/one")
	eng, _ := newTestEngine(app, fastConfig())

	p := eng.Progress()
	assert.False(t, p.Running)
	assert.Zero(t, p.Total)

	_, _ = eng.SelectAll()
	summary, err := eng.RunRemoval(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	p = eng.Progress()
	assert.False(t, p.Running)
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, 1, p.Processed)
	assert.Equal(t, 1, p.Succeeded)
}
