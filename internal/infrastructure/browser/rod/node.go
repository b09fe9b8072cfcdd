package rod

import (
	"strings"

	"github.com/go-rod/rod"

	"sidesweep/internal/application/port/output"
)

var _ output.UINode = (*node)(nil)

// node wraps a live element handle. Handles go stale when the host
// re-renders; errors from a stale handle degrade to not-found / no-op,
// matching the best-effort contract of the port.
type node struct {
	el      *rod.Element
	adapter *SurfaceAdapter
}

func (n *node) Query(selector string) (output.UINode, bool) {
	has, el, err := n.el.Has(selector)
	if err != nil || !has {
		return nil, false
	}
	return &node{el: el, adapter: n.adapter}, true
}

func (n *node) QueryAll(selector string) []output.UINode {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil
	}
	nodes := make([]output.UINode, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &node{el: el, adapter: n.adapter})
	}
	return nodes
}

func (n *node) Attribute(name string) (string, bool) {
	v, err := n.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (n *node) Text() string {
	t, err := n.el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(t)
}

func (n *node) HTML() string {
	h, err := n.el.HTML()
	if err != nil {
		return ""
	}
	return h
}

func (n *node) Visible() bool {
	v, err := n.el.Visible()
	return err == nil && v
}

func (n *node) Rect() (output.Rect, bool) {
	shape, err := n.el.Shape()
	if err != nil || len(shape.Quads) == 0 {
		return output.Rect{}, false
	}
	box := shape.Box()
	return output.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, true
}

func (n *node) ScrollIntoView() error {
	return n.el.ScrollIntoView()
}

func (n *node) Hover() error {
	return n.el.Hover()
}

// Click runs the synthetic pointer sequence in-page. Any eval problem
// (stale handle, CSP, detached frame) degrades to direct activation.
func (n *node) Click() error {
	if _, err := n.el.Eval(clickScript); err != nil {
		return n.Activate()
	}
	return nil
}

func (n *node) Activate() error {
	_, err := n.el.Eval(activateScript)
	return err
}

func (n *node) EnsureAffordance() error {
	_, err := n.el.Eval(affordanceScript)
	return err
}

func (n *node) SetChecked(checked bool) error {
	_, err := n.el.Eval(setCheckedScript, checked)
	return err
}

func (n *node) IsChecked() bool {
	res, err := n.el.Eval(isCheckedScript)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}
