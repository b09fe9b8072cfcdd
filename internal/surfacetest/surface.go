// Package surfacetest provides an in-memory implementation of the surface
// port so engine and locator behavior can be exercised without a browser.
// Tests build a small host tree, wire click handlers that mimic the host
// (menus opening, dialogs confirming, rows disappearing) and run the real
// engine against it.
package surfacetest

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"

	"sidesweep/internal/application/port/output"
)

var _ output.SurfacePort = (*Surface)(nil)

// Surface is a fake host page. All tree access is serialized through one
// mutex so concurrent workers can hammer it under the race detector.
type Surface struct {
	mu  sync.Mutex
	doc *Node

	Path       string
	NavigateFn func(path string)

	PopoverSuppressed bool
	EscapePresses     int
	EscapeFn          func()

	watchers map[int]func()
	nextID   int

	Evals [][]any
}

func New() *Surface {
	s := &Surface{
		Path:     "/",
		watchers: make(map[int]func()),
	}
	body := El("body", nil)
	doc := El("html", nil, body)
	attach(doc, nil, s)
	s.doc = doc
	return s
}

func (s *Surface) Body() *Node {
	return s.doc.Children[0]
}

// Append attaches child under parent.
func (s *Surface) Append(parent, child *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attach(child, parent, s)
	parent.Children = append(parent.Children, child)
}

// Detach removes n from its parent, simulating a host re-render dropping it.
func (s *Surface) Detach(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.detachLocked()
}

func (s *Surface) Query(selector string) (output.UINode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.queryLocked(selector)
}

func (s *Surface) QueryAll(selector string) []output.UINode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.queryAllLocked(selector)
}

func (s *Surface) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Path
}

func (s *Surface) Navigate(path string) error {
	s.mu.Lock()
	fn := s.NavigateFn
	s.mu.Unlock()
	if fn != nil {
		fn(path)
		return nil
	}
	s.mu.Lock()
	s.Path = path
	s.mu.Unlock()
	return nil
}

func (s *Surface) Viewport() (float64, float64) { return 1280, 800 }

func (s *Surface) SetPopoverSuppression(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PopoverSuppressed = on
	return nil
}

func (s *Surface) PressEscape() error {
	s.mu.Lock()
	s.EscapePresses++
	fn := s.EscapeFn
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (s *Surface) WatchTree(_ context.Context, onChange func()) (func(), error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = onChange
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}, nil
}

// TriggerTreeChange fires every active watcher, like a MutationObserver
// batch would.
func (s *Surface) TriggerTreeChange() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Surface) WatcherCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

func (s *Surface) Screenshot(context.Context) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Surface) Eval(js string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Evals = append(s.Evals, append([]any{js}, args...))
	return nil
}

// EvalLog returns a snapshot of every Eval call, safe to read while other
// goroutines keep evaluating.
func (s *Surface) EvalLog() [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]any, len(s.Evals))
	copy(out, s.Evals)
	return out
}

func (s *Surface) Close() {}

func attach(n *Node, parent *Node, s *Surface) {
	n.parent = parent
	n.surface = s
	for _, c := range n.Children {
		attach(c, n, s)
	}
}
