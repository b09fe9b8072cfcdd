package interact

import (
	"context"
	"time"

	"sidesweep/internal/usecase/locator"
)

// WaitForListReady polls until the navigation list exposes at least one
// deletable row.
func WaitForListReady(ctx context.Context, loc *locator.Locator, timeout time.Duration) error {
	return WaitUntil(ctx, timeout, func() bool {
		return len(loc.Rows()) > 0
	})
}
