package locator

import (
	"strings"

	"golang.org/x/net/html"
)

const maxLabelLen = 80

// RowLabel extracts a human-readable title from a row's outer HTML for logs
// and status messages. Markup that fails to parse yields "".
func RowLabel(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	var b strings.Builder
	collectText(doc, &b)
	label := strings.Join(strings.Fields(b.String()), " ")
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen]
	}
	return label
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "svg", "input":
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
