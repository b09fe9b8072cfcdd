package removal

import (
	"fmt"
	"sync"
	"time"

	"sidesweep/internal/application/port/output"
	"sidesweep/internal/surfacetest"
	"sidesweep/internal/usecase/locator"
)

// fastConfig keeps every bounded wait short so failure paths don't stall
// the suite.
func fastConfig() Config {
	return Config{
		Concurrency:     1,
		Stagger:         time.Millisecond,
		RowWait:         250 * time.Millisecond,
		TriggerWait:     250 * time.Millisecond,
		ClickRetries:    3,
		ClickRetryDelay: 10 * time.Millisecond,
		MenuOpenProbe:   60 * time.Millisecond,
		MenuWait:        250 * time.Millisecond,
		DialogWait:      250 * time.Millisecond,
		RowGoneWait:     400 * time.Millisecond,
		SettleDelay:     time.Millisecond,
		ListReadyWait:   250 * time.Millisecond,
	}
}

// fakeApp simulates the host: sidebar rows whose option menus open on
// trigger click, menus whose delete entry opens a confirm dialog, dialogs
// whose confirm removes the row.
type fakeApp struct {
	surface *surfacetest.Surface
	nav     *surfacetest.Node

	mu       sync.Mutex
	rows     map[string]*surfacetest.Node
	broken   map[string]bool // ids whose menu never opens
	debounce map[string]int  // ids that swallow the next N trigger clicks
	menuSeq  int
}

func newFakeApp(refs ...string) *fakeApp {
	s := surfacetest.New()
	nav := surfacetest.El("nav", map[string]string{"aria-label": "Chat history"})
	s.Append(s.Body(), nav)
	app := &fakeApp{
		surface:  s,
		nav:      nav,
		rows:     make(map[string]*surfacetest.Node),
		broken:   make(map[string]bool),
		debounce: make(map[string]int),
	}
	for _, ref := range refs {
		app.addRow(ref)
	}
	return app
}

func (a *fakeApp) addRow(ref string) *surfacetest.Node {
	id, ok := locator.ExtractID(ref)
	if !ok {
		panic("fakeApp.addRow: ref has no id: " + ref)
	}
	trigger := surfacetest.El("button", map[string]string{"aria-haspopup": "menu"})
	label := surfacetest.El("span", nil)
	label.TextVal = "Chat " + id
	row := surfacetest.El("a", map[string]string{"href": ref}, label, trigger)

	trigger.OnClick = func(*surfacetest.Node) {
		a.mu.Lock()
		blocked := a.broken[id]
		if a.debounce[id] > 0 {
			a.debounce[id]--
			blocked = true
		}
		a.mu.Unlock()
		if blocked {
			return
		}
		a.openMenu(id)
	}

	a.surface.Append(a.nav, row)
	a.mu.Lock()
	a.rows[id] = row
	a.mu.Unlock()
	return row
}

func (a *fakeApp) breakMenu(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.broken[id] = true
}

func (a *fakeApp) debounceMenu(id string, clicks int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.debounce[id] = clicks
}

func (a *fakeApp) openMenu(id string) {
	a.mu.Lock()
	a.menuSeq++
	menuID := fmt.Sprintf("menu-%d", a.menuSeq)
	a.mu.Unlock()

	entry := surfacetest.El("div", map[string]string{"role": "menuitem"})
	entry.TextVal = "Delete"
	menu := surfacetest.El("div", map[string]string{"role": "menu", "id": menuID}, entry)

	entry.OnClick = func(*surfacetest.Node) {
		a.surface.Detach(menu)
		a.openDialog(id)
	}
	a.surface.Append(a.surface.Body(), menu)
}

func (a *fakeApp) openDialog(id string) {
	confirm := surfacetest.El("button", nil)
	confirm.TextVal = "Delete"
	cancel := surfacetest.El("button", nil)
	cancel.TextVal = "Cancel"
	dlg := surfacetest.El("div", map[string]string{"role": "dialog"}, confirm, cancel)

	confirm.OnClick = func(*surfacetest.Node) {
		a.surface.Detach(dlg)
		a.mu.Lock()
		row := a.rows[id]
		delete(a.rows, id)
		a.mu.Unlock()
		if row != nil {
			a.surface.Detach(row)
		}
	}
	cancel.OnClick = func(*surfacetest.Node) {
		a.surface.Detach(dlg)
	}
	a.surface.Append(a.surface.Body(), dlg)
}

func (a *fakeApp) rowCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.rows)
}

// statusRecorder captures every status call for assertions.
type statusRecorder struct {
	mu        sync.Mutex
	busy      []bool
	progress  [][3]int
	flashes   []string
	summaries [][3]int
	cleared   int
}

func (r *statusRecorder) SetBusy(b bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = append(r.busy, b)
}

func (r *statusRecorder) UpdateProgress(processed, total, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [3]int{processed, total, failed})
}

func (r *statusRecorder) FlashError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flashes = append(r.flashes, msg)
}

func (r *statusRecorder) ShowSummary(succeeded, total, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, [3]int{succeeded, total, failed})
}

func (r *statusRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared++
}

func (r *statusRecorder) lastSummary() ([3]int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.summaries) == 0 {
		return [3]int{}, false
	}
	return r.summaries[len(r.summaries)-1], true
}

func (r *statusRecorder) flashCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flashes)
}

// nopLogger satisfies the logger port without output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

func newTestEngine(app *fakeApp, cfg Config) (*Engine, *statusRecorder) {
	rec := &statusRecorder{}
	return New(app.surface, rec, nopLogger{}, cfg), rec
}
