package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"sidesweep/internal/usecase/removal"
)

// File is the on-disk TOML shape. Timings are in milliseconds; zero values
// fall back to the engine defaults at construction.
type File struct {
	Target struct {
		URL      string `toml:"url"`
		Headless bool   `toml:"headless"`
	} `toml:"target"`

	Engine struct {
		Concurrency       int  `toml:"concurrency"`
		StaggerMs         int  `toml:"stagger_ms"`
		RowWaitMs         int  `toml:"row_wait_ms"`
		TriggerWaitMs     int  `toml:"trigger_wait_ms"`
		ClickRetries      int  `toml:"click_retries"`
		ClickRetryDelayMs int  `toml:"click_retry_delay_ms"`
		MenuWaitMs        int  `toml:"menu_wait_ms"`
		DialogWaitMs      int  `toml:"dialog_wait_ms"`
		SettleDelayMs     int  `toml:"settle_delay_ms"`
		SuppressPopovers  bool `toml:"suppress_popovers"`
	} `toml:"engine"`

	Status struct {
		Addr    string `toml:"addr"`
		Overlay bool   `toml:"overlay"`
	} `toml:"status"`

	Evidence struct {
		Dir string `toml:"dir"`
	} `toml:"evidence"`
}

func Default() *File {
	f := &File{}
	f.Target.Headless = true
	f.Engine.SuppressPopovers = true
	f.Status.Overlay = true
	return f
}

// Load reads the TOML config at path. A missing file yields the defaults; a
// malformed file is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f := Default()
	if err := toml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// EngineConfig maps the file onto the engine's config; unset timings keep
// their defaults.
func (f *File) EngineConfig() removal.Config {
	cfg := removal.DefaultConfig()
	e := f.Engine
	if e.Concurrency != 0 {
		cfg.Concurrency = e.Concurrency
	}
	if e.StaggerMs != 0 {
		cfg.Stagger = time.Duration(e.StaggerMs) * time.Millisecond
	}
	if e.RowWaitMs != 0 {
		cfg.RowWait = time.Duration(e.RowWaitMs) * time.Millisecond
	}
	if e.TriggerWaitMs != 0 {
		cfg.TriggerWait = time.Duration(e.TriggerWaitMs) * time.Millisecond
	}
	if e.ClickRetries != 0 {
		cfg.ClickRetries = e.ClickRetries
	}
	if e.ClickRetryDelayMs != 0 {
		cfg.ClickRetryDelay = time.Duration(e.ClickRetryDelayMs) * time.Millisecond
	}
	if e.MenuWaitMs != 0 {
		cfg.MenuWait = time.Duration(e.MenuWaitMs) * time.Millisecond
	}
	if e.DialogWaitMs != 0 {
		cfg.DialogWait = time.Duration(e.DialogWaitMs) * time.Millisecond
	}
	if e.SettleDelayMs != 0 {
		cfg.SettleDelay = time.Duration(e.SettleDelayMs) * time.Millisecond
	}
	cfg.SuppressPopovers = e.SuppressPopovers
	cfg.EvidenceDir = f.Evidence.Dir
	return cfg
}
