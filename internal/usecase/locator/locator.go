package locator

import (
	"strings"

	"sidesweep/internal/application/port/output"
)

// Strategy is one way of finding a control. Strategies are tried in order;
// the first hit wins. Supporting a new host layout means appending one here,
// not growing a conditional.
type Strategy struct {
	Name string
	Find func(scope output.UINode) (output.UINode, bool)
}

// deleteWords are the visible-text last resort, matched case-insensitively.
// The host ships an English and a Russian locale.
var deleteWords = []string{"delete", "удалить"}

func matchesDeleteText(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range deleteWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Locator maps logical item refs onto current UI-tree elements. It holds no
// element state: the host tree is volatile, so every call re-queries.
type Locator struct {
	surface output.SurfacePort
}

func New(surface output.SurfacePort) *Locator {
	return &Locator{surface: surface}
}

var rootStrategies = []Strategy{
	{Name: "testid", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`[data-testid="left-sidebar"]`)
	}},
	{Name: "aria", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`nav[aria-label]`)
	}},
	{Name: "nav", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`nav`)
	}},
}

// FindRoot returns the navigation container, or not-found if the host layout
// has changed beyond recognition.
func (l *Locator) FindRoot() (output.UINode, bool) {
	for _, st := range rootStrategies {
		if n, ok := st.Find(surfaceScope{l.surface}); ok {
			return n, true
		}
	}
	return nil, false
}

// Rows returns every deletable row currently under the root: anchors whose
// href carries an identifier segment.
func (l *Locator) Rows() []output.UINode {
	root, ok := l.FindRoot()
	if !ok {
		return nil
	}
	var rows []output.UINode
	for _, a := range root.QueryAll(`a[href]`) {
		href, _ := a.Attribute("href")
		if _, ok := ExtractID(href); ok {
			rows = append(rows, a)
		}
	}
	return rows
}

// RowRef returns a row's navigable reference.
func (l *Locator) RowRef(row output.UINode) (string, bool) {
	return row.Attribute("href")
}

// FindRow locates the live row for ref by exact normalized-path comparison.
// Prefix matches are rejected so "/c/abc" can never resolve to "/c/abc-2".
func (l *Locator) FindRow(ref string) (output.UINode, bool) {
	want := Normalize(ref)
	for _, row := range l.Rows() {
		href, _ := row.Attribute("href")
		if Normalize(href) == want {
			return row, true
		}
	}
	return nil, false
}

var triggerStrategies = []Strategy{
	{Name: "testid", Find: func(row output.UINode) (output.UINode, bool) {
		return row.Query(`[data-testid$="-options"]`)
	}},
	{Name: "haspopup", Find: func(row output.UINode) (output.UINode, bool) {
		return row.Query(`button[aria-haspopup="menu"]`)
	}},
	{Name: "any-button", Find: func(row output.UINode) (output.UINode, bool) {
		return row.Query(`button`)
	}},
}

// FindOptionsTrigger locates the per-row control that opens the options menu.
func (l *Locator) FindOptionsTrigger(row output.UINode) (output.UINode, bool) {
	return firstHit(row, triggerStrategies)
}

// FindOpenMenu locates the menu opened by trigger. A menu tied to the
// trigger's identity (aria-controls) is preferred; any visible open menu is
// accepted as fallback because some host builds drop the linkage.
func (l *Locator) FindOpenMenu(trigger output.UINode) (output.UINode, bool) {
	if trigger != nil {
		if id, ok := trigger.Attribute("aria-controls"); ok && id != "" {
			if menu, ok := l.surface.Query("#" + id); ok && menu.Visible() {
				return menu, true
			}
		}
	}
	for _, menu := range l.surface.QueryAll(`[role="menu"]`) {
		if menu.Visible() {
			return menu, true
		}
	}
	return nil, false
}

var menuEntryStrategies = []Strategy{
	{Name: "testid", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`[data-testid="delete-chat-menu-item"]`)
	}},
	{Name: "menuitem-text", Find: func(s output.UINode) (output.UINode, bool) {
		for _, it := range s.QueryAll(`[role="menuitem"]`) {
			if matchesDeleteText(it.Text()) {
				return it, true
			}
		}
		return nil, false
	}},
}

// FindDeleteMenuEntry locates the delete entry of the currently open menu.
func (l *Locator) FindDeleteMenuEntry() (output.UINode, bool) {
	return firstHit(surfaceScope{l.surface}, menuEntryStrategies)
}

var confirmStrategies = []Strategy{
	{Name: "testid", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`[data-testid="delete-conversation-confirm-button"]`)
	}},
	{Name: "dialog-danger", Find: func(s output.UINode) (output.UINode, bool) {
		if dlg, ok := s.Query(`[role="dialog"]`); ok {
			if btn, ok := dlg.Query(`button[data-danger]`); ok {
				return btn, true
			}
		}
		return nil, false
	}},
	{Name: "dialog-text", Find: func(s output.UINode) (output.UINode, bool) {
		dlg, ok := s.Query(`[role="dialog"]`)
		if !ok {
			return nil, false
		}
		for _, btn := range dlg.QueryAll(`button`) {
			if matchesDeleteText(btn.Text()) {
				return btn, true
			}
		}
		return nil, false
	}},
}

// FindConfirmButton locates the delete-confirm control of the open dialog.
func (l *Locator) FindConfirmButton() (output.UINode, bool) {
	return firstHit(surfaceScope{l.surface}, confirmStrategies)
}

// FindCancelButton locates the dialog's cancel control, used only when
// closing strays after a failed attempt.
func (l *Locator) FindCancelButton() (output.UINode, bool) {
	dlg, ok := l.surface.Query(`[role="dialog"]`)
	if !ok {
		return nil, false
	}
	for _, btn := range dlg.QueryAll(`button`) {
		t := strings.ToLower(strings.TrimSpace(btn.Text()))
		if strings.Contains(t, "cancel") || strings.Contains(t, "отмена") {
			return btn, true
		}
	}
	return nil, false
}

var newViewStrategies = []Strategy{
	{Name: "testid", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`[data-testid="new-chat-button"]`)
	}},
	{Name: "aria", Find: func(s output.UINode) (output.UINode, bool) {
		return s.Query(`a[aria-label="New chat"]`)
	}},
}

// FindNewViewControl locates the "start new/neutral view" control used by
// the navigation guard.
func (l *Locator) FindNewViewControl() (output.UINode, bool) {
	return firstHit(surfaceScope{l.surface}, newViewStrategies)
}

func firstHit(scope output.UINode, strategies []Strategy) (output.UINode, bool) {
	for _, st := range strategies {
		if n, ok := st.Find(scope); ok {
			return n, true
		}
	}
	return nil, false
}

// surfaceScope adapts a SurfacePort to the UINode query surface so document
// level strategies and element-scoped ones share one shape. Only the query
// methods are meaningful.
type surfaceScope struct {
	s output.SurfacePort
}

func (w surfaceScope) Query(sel string) (output.UINode, bool) { return w.s.Query(sel) }
func (w surfaceScope) QueryAll(sel string) []output.UINode    { return w.s.QueryAll(sel) }
func (w surfaceScope) Attribute(string) (string, bool)        { return "", false }
func (w surfaceScope) Text() string                           { return "" }
func (w surfaceScope) HTML() string                           { return "" }
func (w surfaceScope) Visible() bool                          { return true }
func (w surfaceScope) Rect() (output.Rect, bool)              { return output.Rect{}, false }
func (w surfaceScope) ScrollIntoView() error                  { return nil }
func (w surfaceScope) Hover() error                           { return nil }
func (w surfaceScope) Click() error                           { return nil }
func (w surfaceScope) Activate() error                        { return nil }
func (w surfaceScope) EnsureAffordance() error                { return nil }
func (w surfaceScope) SetChecked(bool) error                  { return nil }
func (w surfaceScope) IsChecked() bool                        { return false }
