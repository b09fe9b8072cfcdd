package interact

import (
	"context"
	"time"

	"sidesweep/internal/application/port/output"
)

// viewportMargin is how close to a viewport edge an element may sit before
// we scroll it back toward the center.
const viewportMargin = 48.0

const scrollSettle = 150 * time.Millisecond

// ScrollIntoViewIfNeeded scrolls the node into view only when its bounding
// box falls within viewportMargin of any viewport edge, then pauses briefly
// for the host to settle. A node with no box (detached, display:none) is
// left alone. Works whether or not the container has its own scrollable
// viewport: scrolling is delegated to the surface.
func ScrollIntoViewIfNeeded(ctx context.Context, surface output.SurfacePort, node output.UINode) error {
	r, ok := node.Rect()
	if !ok {
		return nil
	}
	w, h := surface.Viewport()
	if r.X >= viewportMargin && r.X+r.Width <= w-viewportMargin &&
		r.Y >= viewportMargin && r.Y+r.Height <= h-viewportMargin {
		return nil
	}
	if err := node.ScrollIntoView(); err != nil {
		return err
	}
	return Sleep(ctx, scrollSettle)
}
