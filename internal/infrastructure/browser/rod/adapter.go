package rod

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"sidesweep/internal/application/port/output"
)

var _ output.SurfacePort = (*SurfaceAdapter)(nil)

const defaultTimeout = 10 * time.Second

// SurfaceAdapter implements the engine's surface port on a real Chromium
// page driven over CDP.
type SurfaceAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

type Config struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
}

func DefaultConfig() Config {
	return Config{
		Headless:   true,
		SlowMotion: 0,
		Timeout:    defaultTimeout,
		NoSandbox:  true,
		DevTools:   false,
	}
}

func NewSurfaceAdapter(ctx context.Context, cfg Config) (*SurfaceAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-setuid-sandbox")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(u).
		SlowMotion(cfg.SlowMotion).
		MustConnect()

	page := browser.MustPage("about:blank")

	return &SurfaceAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

// Open performs the initial full navigation to the host application.
func (a *SurfaceAdapter) Open(targetURL string) error {
	if err := a.page.Navigate(targetURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	a.page.MustWaitLoad()
	a.page.WaitIdle(5 * time.Second)
	return nil
}

func (a *SurfaceAdapter) Query(selector string) (output.UINode, bool) {
	has, el, err := a.page.Has(selector)
	if err != nil || !has {
		return nil, false
	}
	return &node{el: el, adapter: a}, true
}

func (a *SurfaceAdapter) QueryAll(selector string) []output.UINode {
	els, err := a.page.Elements(selector)
	if err != nil {
		return nil
	}
	nodes := make([]output.UINode, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &node{el: el, adapter: a})
	}
	return nodes
}

func (a *SurfaceAdapter) CurrentPath() string {
	info, err := a.page.Info()
	if err != nil {
		return ""
	}
	u, err := url.Parse(info.URL)
	if err != nil {
		return info.URL
	}
	path := u.Path
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

// Navigate performs a soft (history-level) navigation so the SPA keeps its
// state; a full reload is the fallback when the page rejects the script.
func (a *SurfaceAdapter) Navigate(path string) error {
	if _, err := a.page.Eval(softNavScript, path); err == nil {
		return nil
	}
	info, err := a.page.Info()
	if err != nil {
		return fmt.Errorf("page info: %w", err)
	}
	base, err := url.Parse(info.URL)
	if err != nil {
		return fmt.Errorf("parse current url: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse target path: %w", err)
	}
	return a.page.Navigate(base.ResolveReference(ref).String())
}

func (a *SurfaceAdapter) Viewport() (width, height float64) {
	res, err := a.page.Eval(`() => ({ w: window.innerWidth, h: window.innerHeight })`)
	if err != nil {
		return 0, 0
	}
	return res.Value.Get("w").Num(), res.Value.Get("h").Num()
}

func (a *SurfaceAdapter) SetPopoverSuppression(on bool) error {
	_, err := a.page.Eval(quietScript, on)
	return err
}

func (a *SurfaceAdapter) PressEscape() error {
	return a.page.Keyboard.Press(input.Escape)
}

func (a *SurfaceAdapter) WatchTree(ctx context.Context, onChange func()) (func(), error) {
	stopExpose, err := a.page.Expose(treeChangeCallback, func(_ gson.JSON) (interface{}, error) {
		onChange()
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("expose watcher callback: %w", err)
	}
	if _, err := a.page.Eval(observerScript); err != nil {
		_ = stopExpose()
		return nil, fmt.Errorf("install observer: %w", err)
	}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			_, _ = a.page.Eval(observerStopScript)
			_ = stopExpose()
		})
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return stop, nil
}

func (a *SurfaceAdapter) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := a.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}

func (a *SurfaceAdapter) Eval(js string, args ...any) error {
	_, err := a.page.Eval(js, args...)
	return err
}

func (a *SurfaceAdapter) Close() {
	if a.browser != nil {
		_ = a.browser.Close()
	}
	if a.launcher != nil {
		a.launcher.Kill()
		a.launcher.Cleanup()
	}
}
