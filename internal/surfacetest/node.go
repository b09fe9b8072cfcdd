package surfacetest

import (
	"fmt"
	"sort"
	"strings"

	"sidesweep/internal/application/port/output"
)

var _ output.UINode = (*Node)(nil)

// Node is one fake element. Fields are set at construction; afterwards the
// tree is mutated only through Surface helpers or click handlers.
type Node struct {
	Tag      string
	Attrs    map[string]string
	TextVal  string
	Hidden   bool
	BoxX     float64
	BoxY     float64
	NoBox    bool
	Children []*Node

	// OnClick mimics the host's reaction to activating this element.
	OnClick func(n *Node)

	Affordance bool
	Checked    bool
	Scrolls    int
	Hovers     int
	Clicks     int

	parent  *Node
	surface *Surface
}

// El builds a detached element; Surface.Append (or New) wires it in.
func El(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

func (n *Node) detachLocked() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.Children
	for i, c := range siblings {
		if c == n {
			n.parent.Children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) attached() bool {
	for p := n; p != nil; p = p.parent {
		if p == n.surface.doc {
			return true
		}
	}
	return false
}

func (n *Node) lock() *Surface {
	s := n.surface
	s.mu.Lock()
	return s
}

// --- query surface ---

func (n *Node) Query(selector string) (output.UINode, bool) {
	s := n.lock()
	defer s.mu.Unlock()
	return n.queryLocked(selector)
}

func (n *Node) QueryAll(selector string) []output.UINode {
	s := n.lock()
	defer s.mu.Unlock()
	return n.queryAllLocked(selector)
}

func (n *Node) queryLocked(selector string) (output.UINode, bool) {
	part, err := parseSelector(selector)
	if err != nil {
		return nil, false
	}
	found := n.find(part, true)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

func (n *Node) queryAllLocked(selector string) []output.UINode {
	part, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	found := n.find(part, false)
	out := make([]output.UINode, len(found))
	for i, f := range found {
		out[i] = f
	}
	return out
}

// find walks descendants (not self) in document order.
func (n *Node) find(part selectorPart, firstOnly bool) []*Node {
	var out []*Node
	var walk func(cur *Node) bool
	walk = func(cur *Node) bool {
		for _, c := range cur.Children {
			if part.matches(c) {
				out = append(out, c)
				if firstOnly {
					return true
				}
			}
			if walk(c) && firstOnly {
				return true
			}
		}
		return false
	}
	walk(n)
	return out
}

// --- node surface ---

func (n *Node) Attribute(name string) (string, bool) {
	s := n.lock()
	defer s.mu.Unlock()
	v, ok := n.Attrs[name]
	return v, ok
}

func (n *Node) Text() string {
	s := n.lock()
	defer s.mu.Unlock()
	var b strings.Builder
	n.collectText(&b)
	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}

func (n *Node) collectText(b *strings.Builder) {
	b.WriteString(n.TextVal)
	b.WriteString(" ")
	for _, c := range n.Children {
		c.collectText(b)
	}
}

func (n *Node) HTML() string {
	s := n.lock()
	defer s.mu.Unlock()
	return n.renderLocked()
}

func (n *Node) renderLocked() string {
	var b strings.Builder
	b.WriteString("<" + n.Tag)
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, n.Attrs[k])
	}
	b.WriteString(">")
	b.WriteString(n.TextVal)
	for _, c := range n.Children {
		b.WriteString(c.renderLocked())
	}
	b.WriteString("</" + n.Tag + ">")
	return b.String()
}

func (n *Node) Visible() bool {
	s := n.lock()
	defer s.mu.Unlock()
	return !n.Hidden && n.attached()
}

func (n *Node) Rect() (output.Rect, bool) {
	s := n.lock()
	defer s.mu.Unlock()
	if n.NoBox || !n.attached() {
		return output.Rect{}, false
	}
	x, y := n.BoxX, n.BoxY
	if x == 0 {
		x = 100
	}
	if y == 0 {
		y = 200
	}
	return output.Rect{X: x, Y: y, Width: 200, Height: 32}, true
}

func (n *Node) ScrollIntoView() error {
	s := n.lock()
	defer s.mu.Unlock()
	n.Scrolls++
	n.BoxX = 100
	n.BoxY = 200
	return nil
}

func (n *Node) Hover() error {
	s := n.lock()
	defer s.mu.Unlock()
	n.Hovers++
	return nil
}

func (n *Node) Click() error {
	s := n.lock()
	n.Clicks++
	fn := n.OnClick
	s.mu.Unlock()
	if fn != nil {
		fn(n)
	}
	return nil
}

func (n *Node) Activate() error { return n.Click() }

func (n *Node) EnsureAffordance() error {
	s := n.lock()
	defer s.mu.Unlock()
	n.Affordance = true
	return nil
}

func (n *Node) SetChecked(checked bool) error {
	s := n.lock()
	defer s.mu.Unlock()
	n.Checked = checked
	return nil
}

func (n *Node) IsChecked() bool {
	s := n.lock()
	defer s.mu.Unlock()
	return n.Checked
}
