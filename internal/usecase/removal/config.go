package removal

import "time"

// Config is fixed per engine instance: set once at construction, never
// mutated at runtime.
type Config struct {
	// Concurrency is the number of interleaved workers, clamped to [1,4].
	Concurrency int

	// Stagger is the pause a worker takes between items.
	Stagger time.Duration

	// RowWait bounds LocateRow, TriggerWait bounds LocateTrigger.
	RowWait     time.Duration
	TriggerWait time.Duration

	// ClickRetries attempts to open the menu; each attempt waits up to
	// MenuOpenProbe for a menu and sleeps ClickRetryDelay before the next.
	ClickRetries    int
	ClickRetryDelay time.Duration
	MenuOpenProbe   time.Duration

	// MenuWait bounds LocateDeleteEntry, DialogWait bounds LocateConfirm.
	MenuWait   time.Duration
	DialogWait time.Duration

	// RowGoneWait bounds the disappearance poll that confirms deletion.
	RowGoneWait time.Duration

	// SettleDelay lets the host re-render before the next item.
	SettleDelay time.Duration

	// ListReadyWait bounds the best-effort list readiness waits around the
	// navigation guard and the final re-attach.
	ListReadyWait time.Duration

	// SuppressPopovers enables the explicit quiet mode for the run.
	SuppressPopovers bool

	// EvidenceDir, when set, receives a screenshot per failed item.
	EvidenceDir string
}

func DefaultConfig() Config {
	return Config{
		Concurrency:      2,
		Stagger:          400 * time.Millisecond,
		RowWait:          3000 * time.Millisecond,
		TriggerWait:      1500 * time.Millisecond,
		ClickRetries:     4,
		ClickRetryDelay:  180 * time.Millisecond,
		MenuOpenProbe:    250 * time.Millisecond,
		MenuWait:         2000 * time.Millisecond,
		DialogWait:       3000 * time.Millisecond,
		RowGoneWait:      8000 * time.Millisecond,
		SettleDelay:      300 * time.Millisecond,
		ListReadyWait:    4000 * time.Millisecond,
		SuppressPopovers: true,
	}
}

// normalized clamps the concurrency bound and resets non-positive timings to
// their defaults so a partially filled config cannot stall a run.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.Concurrency > 4 {
		c.Concurrency = 4
	}
	if c.Stagger < 0 {
		c.Stagger = d.Stagger
	}
	if c.RowWait <= 0 {
		c.RowWait = d.RowWait
	}
	if c.TriggerWait <= 0 {
		c.TriggerWait = d.TriggerWait
	}
	if c.ClickRetries <= 0 {
		c.ClickRetries = d.ClickRetries
	}
	if c.ClickRetryDelay < 0 {
		c.ClickRetryDelay = d.ClickRetryDelay
	}
	if c.MenuOpenProbe <= 0 {
		c.MenuOpenProbe = d.MenuOpenProbe
	}
	if c.MenuWait <= 0 {
		c.MenuWait = d.MenuWait
	}
	if c.DialogWait <= 0 {
		c.DialogWait = d.DialogWait
	}
	if c.RowGoneWait <= 0 {
		c.RowGoneWait = d.RowGoneWait
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.ListReadyWait <= 0 {
		c.ListReadyWait = d.ListReadyWait
	}
	return c
}
