package status

import (
	"fmt"
	"sync"
	"time"

	"sidesweep/internal/application/port/output"
)

var _ output.StatusPort = (*Overlay)(nil)

const flashDuration = 2 * time.Second

// pillScript creates/updates the fixed-position status pill in the host
// page. Arguments: text ("" removes the pill), busy flag, error flag.
const pillScript = `(text, busy, isErr) => {
	const id = 'sweep-status-pill';
	let pill = document.getElementById(id);
	if (!text) {
		if (pill) pill.remove();
		return;
	}
	if (!pill) {
		pill = document.createElement('div');
		pill.id = id;
		pill.style.cssText = 'position:fixed;bottom:16px;right:16px;z-index:99999;' +
			'padding:6px 12px;border-radius:14px;font:12px sans-serif;color:#fff;';
		document.body.appendChild(pill);
	}
	pill.style.background = isErr ? '#b3261e' : (busy ? '#444' : '#2e7d32');
	pill.textContent = text;
}`

// Overlay renders run status as a small pill injected into the host page.
// An error flash owns the pill for flashFor: progress and summary updates
// during that window only record the latest text, and the flash's revert
// callback renders it once the window closes.
type Overlay struct {
	surface output.SurfacePort

	mu       sync.Mutex
	busy     bool
	lastText string
	flashGen int
	flashing bool
	flashFor time.Duration
}

func NewOverlay(surface output.SurfacePort) *Overlay {
	return &Overlay{surface: surface, flashFor: flashDuration}
}

func (o *Overlay) render(text string, busy, isErr bool) {
	_ = o.surface.Eval(pillScript, text, busy, isErr)
}

func (o *Overlay) SetBusy(busy bool) {
	o.mu.Lock()
	o.busy = busy
	text := o.lastText
	if text == "" && busy {
		text = "working..."
	}
	flashing := o.flashing
	o.mu.Unlock()
	if busy && !flashing {
		o.render(text, true, false)
	}
}

func (o *Overlay) UpdateProgress(processed, total, failed int) {
	text := fmt.Sprintf("deleting %d/%d", processed, total)
	if failed > 0 {
		text += fmt.Sprintf(" (%d failed)", failed)
	}
	o.mu.Lock()
	o.lastText = text
	busy := o.busy
	flashing := o.flashing
	o.mu.Unlock()
	if flashing {
		return
	}
	o.render(text, busy, false)
}

func (o *Overlay) FlashError(message string) {
	o.mu.Lock()
	o.flashGen++
	gen := o.flashGen
	o.flashing = true
	d := o.flashFor
	o.mu.Unlock()
	o.render(message, true, true)

	time.AfterFunc(d, func() {
		o.mu.Lock()
		if gen != o.flashGen {
			// A newer flash or a Clear took over the pill.
			o.mu.Unlock()
			return
		}
		o.flashing = false
		text := o.lastText
		busy := o.busy
		o.mu.Unlock()
		if text == "" {
			return
		}
		o.render(text, busy, false)
	})
}

func (o *Overlay) ShowSummary(succeeded, total, failed int) {
	text := fmt.Sprintf("deleted %d/%d", succeeded, total)
	if failed > 0 {
		text += fmt.Sprintf(", %d failed", failed)
	}
	o.mu.Lock()
	o.lastText = text
	o.busy = false
	flashing := o.flashing
	o.mu.Unlock()
	if flashing {
		return
	}
	o.render(text, false, false)
}

func (o *Overlay) Clear() {
	o.mu.Lock()
	o.lastText = ""
	o.flashGen++
	o.flashing = false
	o.mu.Unlock()
	o.render("", false, false)
}
