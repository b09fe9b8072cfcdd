package surfacetest

import (
	"fmt"
	"strings"
)

// selectorPart is one compound selector: optional tag, optional #id, any
// number of attribute tests. Combinators and comma lists are not supported;
// the locator's strategy tables only ever use single compounds.
type selectorPart struct {
	tag   string
	id    string
	attrs []attrTest
}

type attrTest struct {
	name string
	op   string // "", "=", "*=", "^=", "$="
	val  string
}

func parseSelector(sel string) (selectorPart, error) {
	var p selectorPart
	rest := strings.TrimSpace(sel)
	if rest == "" {
		return p, fmt.Errorf("empty selector")
	}
	if strings.ContainsAny(rest, " >,+~") {
		return p, fmt.Errorf("unsupported selector: %q", sel)
	}

	i := 0
	for i < len(rest) && rest[i] != '[' && rest[i] != '#' {
		i++
	}
	p.tag = rest[:i]
	rest = rest[i:]

	if strings.HasPrefix(rest, "#") {
		j := strings.IndexByte(rest, '[')
		if j < 0 {
			j = len(rest)
		}
		p.id = rest[1:j]
		rest = rest[j:]
	}

	for rest != "" {
		if rest[0] != '[' {
			return p, fmt.Errorf("unsupported selector: %q", sel)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return p, fmt.Errorf("unterminated attribute in %q", sel)
		}
		body := rest[1:end]
		rest = rest[end+1:]

		t := attrTest{}
		for _, op := range []string{"*=", "^=", "$=", "="} {
			if k := strings.Index(body, op); k >= 0 {
				t.name = body[:k]
				t.op = op
				t.val = strings.Trim(body[k+len(op):], `"'`)
				break
			}
		}
		if t.name == "" {
			t.name = body
		}
		p.attrs = append(p.attrs, t)
	}
	return p, nil
}

func (p selectorPart) matches(n *Node) bool {
	if p.tag != "" && !strings.EqualFold(p.tag, n.Tag) {
		return false
	}
	if p.id != "" && n.Attrs["id"] != p.id {
		return false
	}
	for _, t := range p.attrs {
		v, ok := n.Attrs[t.name]
		if !ok {
			return false
		}
		switch t.op {
		case "":
		case "=":
			if v != t.val {
				return false
			}
		case "*=":
			if !strings.Contains(v, t.val) {
				return false
			}
		case "^=":
			if !strings.HasPrefix(v, t.val) {
				return false
			}
		case "$=":
			if !strings.HasSuffix(v, t.val) {
				return false
			}
		}
	}
	return true
}
