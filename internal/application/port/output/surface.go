package output

import "context"

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// UINode is a live handle into the host page's UI tree. Handles go stale
// whenever the host re-renders, so callers re-query instead of caching.
// Query methods report not-found instead of erroring.
type UINode interface {
	Query(selector string) (UINode, bool)
	QueryAll(selector string) []UINode

	Attribute(name string) (value string, ok bool)
	Text() string
	HTML() string
	Visible() bool
	Rect() (Rect, bool)

	ScrollIntoView() error
	Hover() error

	// Click dispatches the full synthetic pointer/mouse sequence at the
	// node's visible center, degrading to Activate on any dispatch problem.
	Click() error
	// Activate invokes the node's native activation directly, with no
	// synthetic pointer events.
	Activate() error

	// Selection affordance (injected checkbox) on a row node.
	EnsureAffordance() error
	SetChecked(checked bool) error
	IsChecked() bool
}

// SurfacePort is the engine's window onto the host application's UI. The
// host owns the tree; everything here is queried live and best-effort.
type SurfacePort interface {
	Query(selector string) (UINode, bool)
	QueryAll(selector string) []UINode

	// CurrentPath reports the path+query of the currently displayed view.
	CurrentPath() string
	// Navigate performs a soft navigation to an app-internal path.
	Navigate(path string) error
	Viewport() (width, height float64)

	// SetPopoverSuppression toggles the explicit quiet mode that keeps host
	// hover popovers from covering menu targets during a run.
	SetPopoverSuppression(on bool) error

	PressEscape() error

	// WatchTree subscribes to host re-renders of the navigation subtree.
	// onChange may be invoked from any goroutine. The returned stop func
	// detaches the subscription and is safe to call more than once.
	WatchTree(ctx context.Context, onChange func()) (stop func(), err error)

	Screenshot(ctx context.Context) ([]byte, error)

	Eval(js string, args ...any) error
	Close()
}
