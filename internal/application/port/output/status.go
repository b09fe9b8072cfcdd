package output

// StatusPort is the view collaborator the engine reports through. All calls
// are fire-and-forget; a status sink must never fail the run.
type StatusPort interface {
	SetBusy(busy bool)
	UpdateProgress(processed, total, failed int)
	// FlashError shows message transiently, then reverts to the running
	// progress text.
	FlashError(message string)
	ShowSummary(succeeded, total, failed int)
	Clear()
}
