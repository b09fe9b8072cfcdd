package entity

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// RemovalJob is the per-run snapshot of the selection plus its counters.
// Items are claimed through a single monotonically advancing cursor, so each
// item is handed to exactly one worker, in snapshot order.
type RemovalJob struct {
	ID    string
	Items []SelectionEntry

	ids map[string]struct{}

	cursor    atomic.Int64
	processed atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

func NewRemovalJob(items []SelectionEntry) *RemovalJob {
	ids := make(map[string]struct{}, len(items))
	for _, it := range items {
		ids[it.ID] = struct{}{}
	}
	return &RemovalJob{
		ID:    uuid.NewString(),
		Items: items,
		ids:   ids,
	}
}

// Claim hands out the next unclaimed item. ok is false once the sequence is
// exhausted.
func (j *RemovalJob) Claim() (item SelectionEntry, ok bool) {
	idx := j.cursor.Add(1) - 1
	if int(idx) >= len(j.Items) {
		return SelectionEntry{}, false
	}
	return j.Items[int(idx)], true
}

func (j *RemovalJob) Contains(id string) bool {
	_, ok := j.ids[id]
	return ok
}

func (j *RemovalJob) Total() int { return len(j.Items) }

func (j *RemovalJob) RecordSuccess() {
	j.succeeded.Add(1)
	j.processed.Add(1)
}

func (j *RemovalJob) RecordFailure() {
	j.failed.Add(1)
	j.processed.Add(1)
}

func (j *RemovalJob) Progress() (processed, succeeded, failed, total int) {
	return int(j.processed.Load()), int(j.succeeded.Load()), int(j.failed.Load()), len(j.Items)
}
