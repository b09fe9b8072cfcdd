package status

import "sidesweep/internal/application/port/output"

var _ output.StatusPort = (Fanout)(nil)

// Fanout forwards every status call to each sink.
type Fanout []output.StatusPort

func (f Fanout) SetBusy(busy bool) {
	for _, s := range f {
		s.SetBusy(busy)
	}
}

func (f Fanout) UpdateProgress(processed, total, failed int) {
	for _, s := range f {
		s.UpdateProgress(processed, total, failed)
	}
}

func (f Fanout) FlashError(message string) {
	for _, s := range f {
		s.FlashError(message)
	}
}

func (f Fanout) ShowSummary(succeeded, total, failed int) {
	for _, s := range f {
		s.ShowSummary(succeeded, total, failed)
	}
}

func (f Fanout) Clear() {
	for _, s := range f {
		s.Clear()
	}
}
