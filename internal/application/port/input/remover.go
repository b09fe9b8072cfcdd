package input

import "context"

// RunSummary is the final report of one removal run.
type RunSummary struct {
	JobID     string
	Total     int
	Succeeded int
	Failed    int
}

// Remover is the engine surface exposed to the selection/view collaborator.
type Remover interface {
	AttachSelectionAffordances() error
	SelectAll() (int, error)
	Toggle(ref string) (selected bool, err error)
	ClearSelection()
	SelectionCount() int

	// RunRemoval drains the current selection. It returns nil (no error)
	// when the engine is disabled, already running, or nothing is selected.
	RunRemoval(ctx context.Context) (*RunSummary, error)
}
